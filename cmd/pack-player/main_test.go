package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/woozymasta/bdl/pipeline"
)

func TestNormalizeArgs(t *testing.T) {
	t.Parallel()

	got := normalizeArgs([]string{"-link", "a", "--custom", "b", "-repackhands", "-debug"})
	want := []string{"--link", "a", "--custom", "b", "--repackhands", "-debug"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeArgs=%v, want %v", got, want)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{name: "missing folder", args: []string{"-link", missing, "-custom", dir}, want: pipeline.ErrFolderNotFound},
		{name: "missing converter", args: []string{"-link", dir, "-custom", dir, "--converter", filepath.Join(missing, "SuperBMD.exe")}, want: pipeline.ErrConverterNotFound},
		{name: "missing config", args: []string{"--config", filepath.Join(dir, "none.yaml")}, want: os.ErrNotExist},
	}

	for _, tc := range cases {
		var stdout, stderr strings.Builder
		err := run(context.Background(), tc.args, &stdout, &stderr)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: err=%v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"-link", t.TempDir()},
		{"--unknown-flag"},
	} {
		var stdout, stderr strings.Builder
		err := run(context.Background(), args, &stdout, &stderr)
		if err == nil || !strings.Contains(err.Error(), "invalid arguments") {
			t.Errorf("args %v: err=%v", args, err)
		}
		if !strings.Contains(stderr.String(), "Proper format") {
			t.Errorf("args %v: usage not printed", args)
		}
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("link_dir: from-file\ncustom_dir: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(CLI{Config: path, Custom: "from-flag", RepackHands: true})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LinkDir != "from-file" || cfg.CustomDir != "from-flag" || !cfg.RepackHands {
		t.Fatalf("cfg=%+v", cfg)
	}
}
