package main

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-grapheditor/pkg/config"
	"github.com/dd0wney/cluso-grapheditor/pkg/document"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
	"github.com/dd0wney/cluso-grapheditor/pkg/raster"
)

const sceneYAML = `
name: pipeline
nodes:
  - name: Source
    outputs: [out]
  - name: Blur
    inputs: [in]
    outputs: [out]
  - name: Output
    inputs: [in]
    rect: {x: 600, y: 40, w: 160, h: 100}
links:
  - {from: 0, from_slot: 0, to: 1, to_slot: 0}
  - {from: 1, from_slot: 0, to: 2, to_slot: 0}
`

const brokenYAML = `
nodes:
  - name: Source
    outputs: [out]
links:
  - {from: 0, from_slot: 0, to: 3, to_slot: 0}
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvConfigPath, config.EnvLogLevel, config.EnvFallbackLogLevel, config.EnvMetricsAddr} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckValidScene(t *testing.T) {
	path := writeFile(t, "scene.yaml", sceneYAML)

	out, err := run(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+path)
	assert.Contains(t, out, "3 nodes, 2 links")
	assert.Contains(t, out, "2 nodes will be placed by the hierarchical layout")
}

func TestCheckInvalidScene(t *testing.T) {
	good := writeFile(t, "good.yaml", sceneYAML)
	broken := writeFile(t, "broken.yaml", brokenYAML)

	out, err := run(t, "check", good, broken, filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, out, "✓ "+good)
	assert.Contains(t, out, "✗ "+broken)
	assert.Contains(t, out, "missing.yaml")
}

func TestCheckNeedsAScene(t *testing.T) {
	_, err := run(t, "check")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	scene := writeFile(t, "scene.yaml", sceneYAML)
	output := filepath.Join(t.TempDir(), "scene.png")

	out, err := run(t, "render", scene, "-o", output, "--width", "320", "--height", "200", "--zoom", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+output)
	assert.Contains(t, out, "3 nodes, 2 links")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	r0, g0, b0, _ := raster.DefaultBackground.Components()
	painted := 0
	for y := 0; y < 200; y += 2 {
		for x := 0; x < 320; x += 2 {
			r, g, b, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != r0 || uint8(g>>8) != g0 || uint8(b>>8) != b0 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 100)
}

func TestRenderSceneLogsThroughEditor(t *testing.T) {
	doc, _, err := loadDocument(writeFile(t, "scene.yaml", sceneYAML), document.Config{})
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := logging.NewJSONLogger(&logs, logging.DebugLevel)
	opts := renderOptions{width: 64, height: 32, zoom: 1, fit: true}
	require.NoError(t, renderScene(io.Discard, doc, grapheditor.DefaultConfig(), opts, logger))

	assert.Contains(t, logs.String(), "fit to content")
	assert.Contains(t, logs.String(), `"component":"grapheditor"`)
}

func TestRenderMissingScene(t *testing.T) {
	_, err := run(t, "render", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	path := writeFile(t, "scene.yaml", sceneYAML)
	_, err := run(t, "--log-level", "loud", "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestConfigFlag(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "editor:\n  zoom_min: 5\n")
	path := writeFile(t, "scene.yaml", sceneYAML)
	_, err := run(t, "--config", cfgPath, "check", path)
	assert.Error(t, err)
}

func TestSceneName(t *testing.T) {
	assert.Equal(t, "pipeline", sceneName(&document.Scene{Name: "pipeline"}, "/tmp/x.yaml"))
	assert.Equal(t, "graph", sceneName(&document.Scene{}, "/tmp/graph.yaml"))
}

func TestLoadDocumentPlacesNodes(t *testing.T) {
	path := writeFile(t, "scene.yaml", sceneYAML)
	doc, scene, err := loadDocument(path, document.Config{})
	require.NoError(t, err)
	assert.Equal(t, "pipeline", scene.Name)

	nodes := doc.Nodes()
	require.Len(t, nodes, 3)
	assert.Less(t, nodes[0].Rect.Min.X, nodes[1].Rect.Min.X)
	assert.Equal(t, 600.0, nodes[2].Rect.Min.X)
}
