// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bdl

// pack-player rebuilds a player archive from a clean Link folder and a folder
// of replacement models and textures.
//
// Usage:
//
//	pack-player -link "Path/To/Clean/Link/Folder" -custom "Path/To/Custom/Model/Folder" [-repackhands]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/woozymasta/bdl/pipeline"
)

// CLI is the command line grammar.
type CLI struct {
	Link        string `help:"Clean Link folder containing the reference archive."`
	Custom      string `help:"Custom player folder with replacement models and textures."`
	RepackHands bool   `name:"repackhands" help:"Convert the hands model instead of only replacing its texture."`
	Converter   string `help:"Path to the SuperBMD executable."`
	Config      string `help:"Optional YAML config file; flags override it."`
	Debug       bool   `help:"Enable debug logging."`
}

// legacyFlags maps single-dash spellings to kong long flags.
var legacyFlags = map[string]string{
	"-link":        "--link",
	"-custom":      "--custom",
	"-repackhands": "--repackhands",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run parses args, builds the pipeline, and runs it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("pack-player"),
		kong.Description("Rebuild a player archive from custom models and textures."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	if _, err := parser.Parse(normalizeArgs(args)); err != nil {
		printUsage(stderr)
		return fmt.Errorf("invalid arguments: %w", err)
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	if cfg.LinkDir == "" || cfg.CustomDir == "" {
		printUsage(stderr)
		return errors.New("invalid arguments: -link and -custom are required")
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	p, err := pipeline.New(cfg, pipeline.Options{Logger: logger, Output: stdout})
	if err != nil {
		return describe(err)
	}

	return p.Run(ctx)
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(cli CLI) (pipeline.Config, error) {
	var cfg pipeline.Config
	if cli.Config != "" {
		var err error
		cfg, err = pipeline.LoadConfig(cli.Config)
		if err != nil {
			return pipeline.Config{}, err
		}
	}

	if cli.Link != "" {
		cfg.LinkDir = cli.Link
	}
	if cli.Custom != "" {
		cfg.CustomDir = cli.Custom
	}
	if cli.Converter != "" {
		cfg.ConverterPath = cli.Converter
	}
	if cli.RepackHands {
		cfg.RepackHands = true
	}

	return cfg, nil
}

// normalizeArgs rewrites legacy single-dash flags to long flags.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if long, ok := legacyFlags[arg]; ok {
			arg = long
		}
		out[i] = arg
	}

	return out
}

// describe adds setup hints to startup errors.
func describe(err error) error {
	if errors.Is(err, pipeline.ErrConverterNotFound) {
		return fmt.Errorf("SuperBMD not found. SuperBMD.exe must be located in the SuperBMD folder or set with --converter: %w", err)
	}

	return err
}

// printUsage prints the legacy invocation forms.
func printUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, `Proper format:
  pack-player -link "Path/To/Clean/Link/Folder" -custom "Path/To/Custom/Model/Folder"
Or, if you want to modify the hands.bdl model and not just its texture, include the -repackhands argument:
  pack-player -link "Path/To/Clean/Link/Folder" -custom "Path/To/Custom/Model/Folder" -repackhands
`)
}
