package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/subosito/gotenv"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/config"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/server"
)

func main() {
	_ = gotenv.Load()

	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	cfgFile := flags.StringP("config", "c", "", "Config file (default is config.yaml)")
	flags.String("listen", "", "Listen address")
	flags.String("model", "", "Gemini model for summaries")
	flags.String("log-level", "", "Log level")
	_ = flags.Parse(os.Args[1:])

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "fintrack",
	})

	cfg, err := config.Build(*cfgFile, flags)
	if err != nil {
		logger.Fatal("config error", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	srv := server.New(cfg, logger)
	logger.Info("starting server", "addr", cfg.ListenAddr)
	if err := srv.Start(cfg.ListenAddr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
