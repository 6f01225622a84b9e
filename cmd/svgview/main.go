// Command svgview displays SVG documents in a Gio window,
// or renders them to PNG and PDF files.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type Context struct {
	Config Config
	Logger *slog.Logger
}

var CLI struct {
	Config string `help:"TOML file providing default settings" type:"path" placeholder:"FILE"`

	Show   Show   `cmd:"" default:"withargs" help:"display a document in a window"`
	Render Render `cmd:"" help:"render a document to a .png or .pdf file"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("svgview"),
		kong.Description("Display and render SVG documents."),
		kong.UsageOnError(),
	)
	cfg, err := LoadConfig(CLI.Config)
	ctx.FatalIfErrorf(err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level}))
	slog.SetDefault(logger)

	// Call the Run() method of the selected parsed command.
	err = ctx.Run(&Context{Config: cfg, Logger: logger})
	ctx.FatalIfErrorf(err)
}
