package image

import (
	"fmt"
	"strings"
)

// DefaultNegativePrompt captures artefacts the generation model should avoid.
const DefaultNegativePrompt = "low quality, blurry"

// BuildPrompt converts the structured request into the text prompt sent to
// the image model. The field order is fixed so the same request always
// produces the same prompt.
func BuildPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %.0fx%.0f image. %s.", req.Width, req.Height, strings.TrimSpace(req.Description))
	fmt.Fprintf(&b, " With %s colors, %s objects, %s mood, %s composition, %s style",
		joinList(req.Colors),
		joinList(req.Objects),
		strings.TrimSpace(req.Mood),
		joinList(req.Composition),
		strings.TrimSpace(req.Style),
	)
	return b.String()
}

func joinList(values []string) string {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return strings.Join(trimmed, ", ")
}
