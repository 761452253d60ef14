package design

// Kind discriminates the item variants inside a PlacedItem. It is serialized
// as the "type" field on the wire.
type Kind string

const (
	KindNewImage      Kind = "new_image"
	KindExistingImage Kind = "existing_image"
	KindEnrichedImage Kind = "enriched_image"
	KindText          Kind = "text"
	KindRectangle     Kind = "rectangle"
)

// Item is the closed set of things that can be placed on the artboard. The
// unexported marker keeps the variant set sealed to this package so callers
// dispatch with an exhaustive type switch instead of sniffing fields.
type Item interface {
	Kind() Kind
	sealed()
}

// NewImage is an unresolved placeholder the model emits when it wants a fresh
// image generated. The resolver replaces it with an EnrichedImage; it never
// survives into a rendered document.
type NewImage struct {
	Description      string   `json:"description"`
	Colors           []string `json:"colors"`
	Objects          []string `json:"objects"`
	Mood             string   `json:"mood"`
	Composition      []string `json:"composition"`
	Style            string   `json:"style"`
	Width            float64  `json:"width"`
	Height           float64  `json:"height"`
	RemoveBackground bool     `json:"remove_background"`
}

func (NewImage) Kind() Kind { return KindNewImage }
func (NewImage) sealed()    {}

// ExistingImage references a previously resolved image by its pool id. The
// model is instructed never to invent ids; the resolver rejects ids that are
// not in the session's pool.
type ExistingImage struct {
	ID string `json:"id"`
}

func (ExistingImage) Kind() Kind { return KindExistingImage }
func (ExistingImage) sealed()    {}

// EnrichedImage is the terminal state of any image item: a stable id and a
// durable asset URL. Description is carried along so later generations can
// reuse the image with context.
type EnrichedImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

func (EnrichedImage) Kind() Kind { return KindEnrichedImage }
func (EnrichedImage) sealed()    {}

// Align enumerates horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Text is a styled text box. When FitText is set the renderer leaves the font
// size to a fit-to-box strategy instead of honoring FontSize.
type Text struct {
	Text       string  `json:"text"`
	Font       string  `json:"font"`
	FontSize   float64 `json:"fontSize"`
	FontWeight int     `json:"fontWeight"`
	FontColor  string  `json:"fontColor"`
	FontStyle  string  `json:"fontStyle"`
	Width      float64 `json:"width"`
	Align      Align   `json:"align"`
	Wrap       bool    `json:"wrap"`
	Bold       bool    `json:"bold"`
	Italic     bool    `json:"italic"`
	Underline  bool    `json:"underline"`
	FitText    bool    `json:"fitText"`
}

func (Text) Kind() Kind { return KindText }
func (Text) sealed()    {}

// Gradient is an optional linear fill for rectangles.
type Gradient struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Angle float64 `json:"angle"`
}

// Rectangle is a plain box with fill and stroke.
type Rectangle struct {
	Fill         string    `json:"fill"`
	Stroke       string    `json:"stroke"`
	StrokeWidth  float64   `json:"strokeWidth"`
	CornerRadius float64   `json:"cornerRadius,omitempty"`
	Gradient     *Gradient `json:"gradient,omitempty"`
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Rectangle) sealed()    {}

func cloneItem(it Item) Item {
	switch v := it.(type) {
	case NewImage:
		if v.Colors != nil {
			v.Colors = append([]string(nil), v.Colors...)
		}
		if v.Objects != nil {
			v.Objects = append([]string(nil), v.Objects...)
		}
		if v.Composition != nil {
			v.Composition = append([]string(nil), v.Composition...)
		}
		return v
	case Rectangle:
		if v.Gradient != nil {
			g := *v.Gradient
			v.Gradient = &g
		}
		return v
	default:
		// Remaining variants hold only scalar fields.
		return it
	}
}
