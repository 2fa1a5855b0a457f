package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds configuration and shared services for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	OutDir string
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Render  RenderCmd  `cmd:"" help:"Extract an article and render it as PDF or Markdown"`
	Capture CaptureCmd `cmd:"" help:"Print the full rendered page to PDF with a headless browser"`

	Verbose bool `short:"v" help:"Enable verbose logging"`
}
