package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClear(t *testing.T) {
	input := writeStats(t)
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	exec := func(args ...string) {
		t.Helper()
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	exec("render", input, "-f", "svg", "-o", filepath.Join(t.TempDir(), "chart.svg"))
	dir := filepath.Join(home, appName)
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Fatal("render should populate the cache")
	}

	exec("cache", "clear")
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "absent"))
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Errorf("clearing a missing cache should succeed: %v", err)
	}
}
