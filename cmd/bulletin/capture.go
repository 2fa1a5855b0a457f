package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dailybulletin/bulletin"
	"github.com/dailybulletin/bulletin/fs"
	"github.com/dailybulletin/bulletin/rod"
)

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URL string `arg:"" help:"Page URL"`

	Out     string        `short:"o" help:"Output file path (defaults to a name derived from the URL)"`
	Timeout time.Duration `default:"60s" help:"Capture timeout"`
}

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	url, err := bulletin.NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bulletin.ErrorMessage(err))
		return err
	}

	capturer, err := rod.NewCapturer()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer capturer.Close()

	ctx, cancel := context.WithTimeout(deps.Ctx, c.Timeout)
	defer cancel()

	data, err := capturer.Capture(ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bulletin.ErrorMessage(err))
		return err
	}

	out := c.Out
	if out == "" {
		out = fs.CaptureName(url)
	}

	doc := &bulletin.RenderedDocument{
		URL:    url,
		Format: bulletin.FormatPDF,
		Data:   data,
	}
	path, err := fs.NewWriter(deps.OutDir).WriteArtifact(doc, out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bulletin.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  %d bytes\n", path, len(data))
	return nil
}
