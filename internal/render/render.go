package render

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"designforge/internal/domain/design"
)

// Renderer maps a fully resolved document to an HTML string for preview and
// export. It is deterministic and side-effect free apart from warnings about
// items it cannot render.
type Renderer struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// HTML renders the document. Items paint in ascending zIndex; ties keep
// their original sequence order. Unrenderable variants (unresolved
// placeholders) are dropped with a warning — preview is lenient where the
// resolver is strict.
func (r *Renderer) HTML(doc *design.Document) string {
	if doc == nil {
		return ""
	}
	order := make([]int, len(doc.Items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return doc.Items[order[a]].ZIndex < doc.Items[order[b]].ZIndex
	})

	var b strings.Builder
	fmt.Fprintf(&b,
		`<div class="design-artboard" style="position: relative; width: %spx; height: %spx; background-color: %s; overflow: hidden;">`,
		px(doc.Artboard.Width), px(doc.Artboard.Height), html.EscapeString(doc.Background))
	b.WriteString("\n")

	for _, idx := range order {
		markup := r.renderItem(idx, doc.Items[idx])
		if markup == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(markup)
		b.WriteString("\n")
	}
	b.WriteString("</div>")
	return b.String()
}

func (r *Renderer) renderItem(index int, placed design.PlacedItem) string {
	base := baseStyle(placed)
	switch item := placed.Item.(type) {
	case design.EnrichedImage:
		return renderImage(base, item)
	case design.Text:
		return renderText(base, item)
	case design.Rectangle:
		return renderRect(base, item)
	default:
		r.logger.Warn().
			Int("item", index).
			Str("type", string(placed.Item.Kind())).
			Msg("skipping item that cannot be rendered")
		return ""
	}
}

func baseStyle(p design.PlacedItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "position: absolute; left: %spx; top: %spx; width: %spx; height: %spx;",
		px(p.X), px(p.Y), px(p.Width), px(p.Height))
	fmt.Fprintf(&b, " z-index: %d;", p.ZIndex)
	fmt.Fprintf(&b, " opacity: %s;", fraction(p.Opacity))
	if p.Rotation != 0 {
		fmt.Fprintf(&b, " transform: rotate(%sdeg);", px(p.Rotation))
	}
	return b.String()
}

func renderImage(base string, item design.EnrichedImage) string {
	if item.URL == "" {
		// Never emit a broken image reference; show the description instead.
		return fmt.Sprintf(
			`<div class="design-image-placeholder" style="%s box-sizing: border-box; border: 1px dashed #999; display: flex; align-items: center; justify-content: center;">%s</div>`,
			base, html.EscapeString(item.Description))
	}
	return fmt.Sprintf(
		`<img src="%s" alt="%s" style="%s box-sizing: border-box; object-fit: cover;" />`,
		html.EscapeString(item.URL), html.EscapeString(item.Description), base)
}

func renderText(base string, item design.Text) string {
	var style strings.Builder
	style.WriteString(base)
	fmt.Fprintf(&style, " font-family: %s; color: %s; text-align: %s;",
		html.EscapeString(item.Font), html.EscapeString(item.FontColor), item.Align)

	class := "design-text"
	if item.FitText {
		// Font size is left to the embedding layer's fit-to-box strategy.
		class += " fit-text"
	} else if item.FontSize > 0 {
		fmt.Fprintf(&style, " font-size: %spx;", px(item.FontSize))
	}
	if item.FontWeight > 0 {
		fmt.Fprintf(&style, " font-weight: %d;", item.FontWeight)
	}
	if item.FontStyle != "" {
		fmt.Fprintf(&style, " font-style: %s;", html.EscapeString(item.FontStyle))
	}
	// Boolean flags apply independently; doubling up with fontWeight or
	// fontStyle is harmless.
	if item.Bold {
		style.WriteString(" font-weight: bold;")
	}
	if item.Italic {
		style.WriteString(" font-style: italic;")
	}
	if item.Underline {
		style.WriteString(" text-decoration: underline;")
	}
	if !item.Wrap {
		style.WriteString(" white-space: nowrap;")
	}
	return fmt.Sprintf(`<div class="%s" style="%s">%s</div>`, class, style.String(), html.EscapeString(item.Text))
}

func renderRect(base string, item design.Rectangle) string {
	var style strings.Builder
	style.WriteString(base)
	if item.Gradient != nil {
		fmt.Fprintf(&style, " background: linear-gradient(%sdeg, %s, %s);",
			px(item.Gradient.Angle), html.EscapeString(item.Gradient.From), html.EscapeString(item.Gradient.To))
	} else {
		fmt.Fprintf(&style, " background-color: %s;", html.EscapeString(item.Fill))
	}
	if item.StrokeWidth > 0 {
		fmt.Fprintf(&style, " border: %spx solid %s;", px(item.StrokeWidth), html.EscapeString(item.Stroke))
	}
	if item.CornerRadius > 0 {
		fmt.Fprintf(&style, " border-radius: %spx;", px(item.CornerRadius))
	}
	style.WriteString(" box-sizing: border-box;")
	return fmt.Sprintf(`<div class="design-rect" style="%s"></div>`, style.String())
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fraction(opacity float64) string {
	return strconv.FormatFloat(opacity/100, 'f', -1, 64)
}
