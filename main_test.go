package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rectalogic/terp/internal/mesh"
	"github.com/rectalogic/terp/internal/project"
	"github.com/rectalogic/terp/internal/state"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.toml")))
	return root.Execute()
}

func writeProject(t *testing.T) string {
	t.Helper()
	s := state.NewSession()
	brush := state.Appearance{Color: state.LinearRGBA{R: 1, A: 1}, Radius: 3}
	for _, side := range []state.Side{state.Source, state.Target} {
		_, err := s.Start(side, mesh.Vec2{X: 0, Y: 0}, brush)
		require.NoError(t, err)
		require.NoError(t, s.Point(mesh.Vec2{X: 10, Y: float32(side) * 10}))
		_, err = s.End()
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), "scene.terp")
	require.NoError(t, project.Save(s, path))
	return path
}

func TestExport(t *testing.T) {
	path := writeProject(t)
	out := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, run(t, "export", path, "-o", out, "--t", "0,0.5,1"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportEmptyProject(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	err := run(t, "export", filepath.Join(t.TempDir(), "none.terp"), "-o", out)
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestArgs(t *testing.T) {
	assert.Error(t, run(t, "play"))
	assert.Error(t, run(t, "export"))
	assert.Error(t, run(t, "join", "a", "b"))
	assert.Error(t, run(t, "edit", "extra"))
}

func TestBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("bogus = 1\n"), 0o644))
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"export", writeProject(t), "--config", cfg})
	assert.Error(t, root.Execute())
}
