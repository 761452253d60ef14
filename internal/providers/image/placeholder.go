package image

import (
	"context"
	"fmt"
)

// PlaceholderGenerator returns hosted placeholder images instead of calling
// a paid provider. It keeps the pipeline fully operational in development
// and test environments where no generation key is configured.
type PlaceholderGenerator struct{}

func NewPlaceholderGenerator() *PlaceholderGenerator {
	return &PlaceholderGenerator{}
}

func (PlaceholderGenerator) Generate(_ context.Context, req GenerateRequest) (Asset, error) {
	width, height := int(req.Width), int(req.Height)
	if width <= 0 {
		width = 600
	}
	if height <= 0 {
		height = 400
	}
	return Asset{
		URL:    fmt.Sprintf("https://placehold.co/%dx%d", width, height),
		Format: "png",
	}, nil
}

var _ Generator = (*PlaceholderGenerator)(nil)
