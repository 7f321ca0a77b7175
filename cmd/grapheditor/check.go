package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-grapheditor/pkg/document"
)

// errCheckFailed is returned after the report has already been printed.
var errCheckFailed = errors.New("scene check failed")

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check scene.yaml...",
		Short: "Validate scene files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if !checkScene(cmd.OutOrStdout(), path) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errCheckFailed, failed, len(args))
			}
			return nil
		},
	}
}

// checkScene validates one scene file and prints the result. It reports
// whether the scene is valid.
func checkScene(w io.Writer, path string) bool {
	scene, err := document.LoadScene(path)
	if err == nil {
		err = scene.Validate()
	}
	if err != nil {
		bad.Fprintf(w, "✗ %s\n", path)
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		return false
	}

	unplaced := 0
	for _, n := range scene.Nodes {
		if n.Rect == nil {
			unplaced++
		}
	}
	good.Fprintf(w, "✓ %s", path)
	fmt.Fprintf(w, " %d nodes, %d links\n", len(scene.Nodes), len(scene.Links))
	if unplaced > 0 {
		layout := scene.Layout
		if layout == "" {
			layout = "hierarchical"
		}
		subtle.Fprintf(w, "    %d nodes will be placed by the %s layout\n", unplaced, layout)
	}
	return true
}
