package mock

import (
	"context"

	"github.com/dailybulletin/bulletin"
)

var _ bulletin.Harvester = (*Harvester)(nil)

// Harvester is a mock implementation of bulletin.Harvester.
type Harvester struct {
	HarvestFn func(rawHTML string, baseURL string) ([]bulletin.HarvestedImage, error)
}

func (h *Harvester) Harvest(rawHTML string, baseURL string) ([]bulletin.HarvestedImage, error) {
	return h.HarvestFn(rawHTML, baseURL)
}

var _ bulletin.Placer = (*Placer)(nil)

// Placer is a mock implementation of bulletin.Placer.
type Placer struct {
	PlaceFn func(contentHTML string, harvested []bulletin.HarvestedImage) (*bulletin.Placement, error)
}

func (p *Placer) Place(contentHTML string, harvested []bulletin.HarvestedImage) (*bulletin.Placement, error) {
	return p.PlaceFn(contentHTML, harvested)
}

var _ bulletin.ImageLoader = (*ImageLoader)(nil)

// ImageLoader is a mock implementation of bulletin.ImageLoader.
type ImageLoader struct {
	FetchBytesFn func(ctx context.Context, url string) []byte
}

func (l *ImageLoader) FetchBytes(ctx context.Context, url string) []byte {
	return l.FetchBytesFn(ctx, url)
}
