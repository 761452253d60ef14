package image

import "context"

// GenerateRequest carries the prompt material for one image, lifted from a
// new_image item. Width and height are a natural-resolution hint for the
// model, independent of the item's bounding box on the artboard.
type GenerateRequest struct {
	Description string
	Colors      []string
	Objects     []string
	Mood        string
	Composition []string
	Style       string
	Width       float64
	Height      float64
	RequestID   string
}

// Asset is a generated image: either already hosted (URL set) or raw bytes
// the caller must persist to obtain a durable URL.
type Asset struct {
	URL    string
	Data   []byte
	Format string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Asset, error)
}
