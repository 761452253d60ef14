package design

import (
	"fmt"
	"strings"
)

// Validate checks the document structurally: dimensions, bounds, enums and
// required fields. It does not check cross-references such as whether an
// existing_image id is actually in the session pool; the resolver owns that.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("design: document is nil")
	}
	if d.Artboard.Width <= 0 || d.Artboard.Height <= 0 {
		return fmt.Errorf("design: artboard dimensions must be positive, got %.0fx%.0f", d.Artboard.Width, d.Artboard.Height)
	}
	for i, placed := range d.Items {
		if err := placed.validate(); err != nil {
			return fmt.Errorf("design: item %d: %w", i, err)
		}
	}
	return nil
}

func (p PlacedItem) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("bounding box must be positive, got %.0fx%.0f", p.Width, p.Height)
	}
	if p.Opacity < 0 || p.Opacity > 100 {
		return fmt.Errorf("opacity must be within [0,100], got %g", p.Opacity)
	}
	if p.Item == nil {
		return fmt.Errorf("missing item variant")
	}
	switch v := p.Item.(type) {
	case NewImage:
		if strings.TrimSpace(v.Description) == "" {
			return fmt.Errorf("new_image requires a description")
		}
	case ExistingImage:
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("existing_image requires an id")
		}
	case EnrichedImage:
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("enriched_image requires an id")
		}
	case Text:
		switch v.Align {
		case AlignLeft, AlignCenter, AlignRight:
		default:
			return fmt.Errorf("text align must be left, center or right, got %q", v.Align)
		}
	case Rectangle:
		if v.StrokeWidth < 0 {
			return fmt.Errorf("rectangle stroke width must not be negative")
		}
	}
	return nil
}
