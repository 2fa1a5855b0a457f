package main

import (
	"fmt"
	"time"

	"github.com/dailybulletin/bulletin"
	"github.com/dailybulletin/bulletin/fs"
	"github.com/dailybulletin/bulletin/goquery"
	"github.com/dailybulletin/bulletin/htmltomarkdown"
	bulhttp "github.com/dailybulletin/bulletin/http"
	"github.com/dailybulletin/bulletin/pdf"
	"github.com/dailybulletin/bulletin/press"
	"github.com/dailybulletin/bulletin/readability"
	"github.com/dailybulletin/bulletin/rod"
	bulslog "github.com/dailybulletin/bulletin/slog"
	"github.com/dailybulletin/bulletin/trafilatura"
)

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	URL string `arg:"" help:"Article URL"`

	Out         string        `short:"o" help:"Output file path (defaults to a name derived from the title)"`
	Engine      string        `default:"readability" enum:"readability,trafilatura" help:"Primary extraction engine"`
	Format      string        `default:"pdf" enum:"pdf,md" help:"Artifact format"`
	Timeout     time.Duration `default:"15s" help:"Page fetch timeout"`
	MinChars    int           `name:"min-chars" default:"500" help:"Extracted text length below which the container fallback kicks in"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent image prefetch limit"`
	RateLimit   float64       `name:"rate-limit" help:"Image downloads per second (0 = unlimited)"`
	Browser     bool          `help:"Fetch with headless Chrome instead of plain HTTP"`
}

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	fetcher, err := c.newFetcher(deps)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var primary bulletin.Extractor
	switch c.Engine {
	case "trafilatura":
		primary = trafilatura.NewExtractor()
	default:
		primary = readability.NewExtractor()
	}

	var loaderOpts []bulhttp.LoaderOption
	if c.RateLimit > 0 {
		loaderOpts = append(loaderOpts, bulhttp.WithRateLimit(c.RateLimit))
	}

	p := &press.Press{
		Fetcher: fetcher,
		Extractor: bulslog.NewLoggingExtractor(&bulletin.GatedExtractor{
			Primary:  primary,
			Fallback: goquery.NewFallbackExtractor(),
			MinChars: c.MinChars,
		}, deps.Logger),
		Harvester: goquery.NewHarvester(),
		Placer:    goquery.NewPlacer(),
		Blocks:    goquery.NewBlockBuilder(),
		Renderer:  pdf.NewRenderer(),
		Converter: htmltomarkdown.NewConverter(),
		Images:    bulslog.NewLoggingImageLoader(bulhttp.NewImageLoader(loaderOpts...), deps.Logger),
		Prefetch:  c.Concurrency,
	}

	format := bulletin.FormatPDF
	if c.Format == "md" {
		format = bulletin.FormatMarkdown
	}

	doc, err := p.Run(deps.Ctx, c.URL, format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bulletin.ErrorMessage(err))
		return err
	}

	path, err := fs.NewWriter(deps.OutDir).WriteArtifact(doc, c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bulletin.ErrorMessage(err))
		return err
	}

	if doc.Format == bulletin.FormatPDF {
		fmt.Fprintf(deps.Stdout, "%s  %d pages, %d blocks, %d images\n", path, doc.Pages, doc.Blocks, doc.Images)
	} else {
		fmt.Fprintf(deps.Stdout, "%s  %d bytes\n", path, len(doc.Data))
	}

	return nil
}

// newFetcher builds the page fetcher, wrapped with logging. The browser
// variant is for pages that only render their content client-side.
func (c *RenderCmd) newFetcher(deps *Dependencies) (bulletin.Fetcher, error) {
	if c.Browser {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return bulslog.NewLoggingFetcher(f, deps.Logger), nil
	}
	return bulslog.NewLoggingFetcher(bulhttp.NewFetcher(bulhttp.WithTimeout(c.Timeout)), deps.Logger), nil
}
