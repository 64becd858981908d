package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// Takeout archives nest the export under a per-product tree; the transaction
// page is the HTML file whose path mentions both markers.
const (
	activityMarker = "My Activity"
	providerMarker = "Google Pay"
)

// extractActivityHTML unpacks a Takeout archive in memory and returns the
// bytes of the activity export page. A well-formed archive without one is a
// distinct failure from an unreadable archive.
func (p *Parser) extractActivityHTML(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable zip archive: %v", ErrUnsupportedFormat, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".html") {
			continue
		}
		dir := path.Dir(f.Name)
		if !strings.Contains(dir, activityMarker) || !strings.Contains(dir, providerMarker) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		html, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from archive: %w", f.Name, err)
		}
		p.logger.Debug("found activity export in archive", "path", f.Name, "bytes", len(html))
		return html, nil
	}

	return nil, ErrSourceNotFound
}
