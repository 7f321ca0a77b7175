package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-grapheditor/pkg/config"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
)

var version = "0.3.0"

// Report colours.
var (
	good   = color.New(color.FgGreen, color.Bold)
	bad    = color.New(color.FgRed, color.Bold)
	subtle = color.New(color.FgHiBlack)
	brand  = color.New(color.FgHiMagenta, color.Bold)
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

func (a *app) level() logging.Level { return a.cfg.LogLevel() }

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "grapheditor",
		Short:         "Node graph editor",
		Long:          brand.Sprint("grapheditor") + " edits, renders and checks node graph scenes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.SetVersionTemplate("grapheditor {{ .Version }}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvConfigPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		tuiCmd(a),
		renderCmd(a),
		checkCmd(a),
	)
	return root
}
