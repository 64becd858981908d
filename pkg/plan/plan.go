package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is a YAML manifest of exports to run through the pipeline in one CLI
// invocation.
type Plan struct {
	OutputDir string   `yaml:"output_dir"`
	Exports   []Export `yaml:"exports"`
}

// Export is a single upload to process. Name overrides the output basename
// when set.
type Export struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Exports) == 0 {
		return nil, fmt.Errorf("plan has no exports")
	}
	return &p, nil
}

func (p *Plan) Print() {
	for i, e := range p.Exports {
		fmt.Printf("[%d] file=%s name=%s\n", i+1, e.File, e.Name)
	}
}
