package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-grapheditor/pkg/document"
	"github.com/dd0wney/cluso-grapheditor/pkg/layout"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
	"github.com/dd0wney/cluso-grapheditor/pkg/metrics"
	"github.com/dd0wney/cluso-grapheditor/pkg/tui"
)

func tuiCmd(a *app) *cobra.Command {
	var (
		metricsAddr     string
		systemClipboard bool
	)
	cmd := &cobra.Command{
		Use:   "tui [scene.yaml]",
		Short: "Edit a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Addr = metricsAddr
			}
			if cmd.Flags().Changed("system-clipboard") {
				cfg.TUI.SystemClipboard = systemClipboard
			}

			// The terminal belongs to the UI, so logs go to a file.
			logger, closer, err := logging.NewFileLogger(cfg.Log.File, a.level())
			if err != nil {
				return err
			}
			defer closer.Close()

			reg := metrics.NewRegistry()
			if cfg.Metrics.Addr != "" {
				srv := metrics.NewServer(cfg.Metrics.Addr, reg, logger)
				if err := srv.Start(); err != nil {
					return err
				}
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Stop(ctx)
				}()
			}

			docCfg := document.Config{
				JournalSize: cfg.TUI.JournalSize,
				Logger:      logger,
				Metrics:     reg,
			}
			if cfg.TUI.SystemClipboard {
				cb, err := document.NewSystemClipboard()
				if err != nil {
					logger.Warn("system clipboard unavailable, using memory", logging.Error(err))
				} else {
					docCfg.Clipboard = cb
				}
			}

			arrange, err := layout.ByName(cfg.TUI.Layout, layout.DefaultConfig())
			if err != nil {
				return err
			}

			opts := tui.Options{
				Editor:        cfg.EditorConfig(),
				Layout:        arrange,
				CellWidth:     cfg.TUI.CellWidth,
				CellHeight:    cfg.TUI.CellHeight,
				FrameInterval: cfg.TUI.FrameInterval,
				Logger:        logger,
				Metrics:       reg,
			}
			if len(args) == 1 {
				doc, scene, err := loadDocument(args[0], docCfg)
				if err != nil {
					return err
				}
				opts.Document, opts.ScenePath, opts.SceneName = doc, args[0], sceneName(scene, args[0])
			} else {
				opts.Document = document.New(docCfg)
			}

			logger.Info("terminal editor starting", logging.Path(opts.ScenePath))
			return tui.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&systemClipboard, "system-clipboard", false, "copy nodes through the system clipboard")
	return cmd
}

// loadDocument reads a scene file into a document.
func loadDocument(path string, cfg document.Config) (*document.Document, *document.Scene, error) {
	scene, err := document.LoadScene(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := document.FromScene(scene, cfg)
	if err != nil {
		return nil, nil, err
	}
	return doc, scene, nil
}

// sceneName is the scene's own name, or the file name without extension.
func sceneName(s *document.Scene, path string) string {
	if s.Name != "" {
		return s.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
