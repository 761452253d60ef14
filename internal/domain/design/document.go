package design

// Artboard describes the canvas the design is painted onto. Dimensions are in
// pixels and may change between generations when the model decides a
// different format suits the brief.
type Artboard struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacedItem positions one item on the artboard. Coordinates are the top-left
// corner of the bounding box and may be negative so items can bleed past the
// artboard edge. Paint order is ascending ZIndex, ties broken by slice
// position, not slice order itself.
type PlacedItem struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
	Opacity  float64 `json:"opacity"`
	Item     Item    `json:"item"`
}

// Document is the full layout description for one design state: a background
// color, artboard dimensions, and the ordered set of placed items.
type Document struct {
	Concept    string       `json:"concept"`
	Background string       `json:"background"`
	Artboard   Artboard     `json:"artboard"`
	Items      []PlacedItem `json:"items"`
}

// Clone returns a deep copy of the document. Item variants are value structs,
// so copying the placed-item slice copies everything reachable.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	if d.Items != nil {
		out.Items = make([]PlacedItem, len(d.Items))
		copy(out.Items, d.Items)
		for i := range out.Items {
			out.Items[i].Item = cloneItem(d.Items[i].Item)
		}
	}
	return &out
}

// Resolved reports whether every image item in the document carries a
// concrete asset reference, i.e. there are no new_image or existing_image
// placeholders left.
func (d *Document) Resolved() bool {
	for _, placed := range d.Items {
		switch placed.Item.(type) {
		case NewImage, ExistingImage:
			return false
		}
	}
	return true
}
