package design

import (
	"encoding/json"
	"fmt"
)

// wireItem is the marshaled shape of every variant: the variant's own fields
// plus the "type" discriminator.

type itemHeader struct {
	Type Kind `json:"type"`
}

// MarshalJSON emits the item with its "type" discriminator injected.
func (p PlacedItem) MarshalJSON() ([]byte, error) {
	type placed PlacedItem // drop methods to avoid recursion
	shadow := struct {
		placed
		Item json.RawMessage `json:"item"`
	}{placed: placed(p)}

	if p.Item == nil {
		return nil, fmt.Errorf("design: placed item has no item variant")
	}
	body, err := json.Marshal(p.Item)
	if err != nil {
		return nil, err
	}
	tagged, err := injectType(body, p.Item.Kind())
	if err != nil {
		return nil, err
	}
	shadow.Item = tagged
	return json.Marshal(shadow)
}

// UnmarshalJSON decodes the tagged union by reading the "type" discriminator
// first and then decoding into the matching concrete variant. Unknown or
// missing discriminators are an error, never a silent skip.
func (p *PlacedItem) UnmarshalJSON(data []byte) error {
	type placed PlacedItem
	shadow := struct {
		*placed
		Item json.RawMessage `json:"item"`
	}{placed: (*placed)(p)}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	if len(shadow.Item) == 0 {
		return fmt.Errorf("design: placed item has no item variant")
	}
	item, err := UnmarshalItem(shadow.Item)
	if err != nil {
		return err
	}
	p.Item = item
	return nil
}

// UnmarshalItem decodes a single item variant from its tagged JSON form.
func UnmarshalItem(data []byte) (Item, error) {
	var head itemHeader
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("design: read item type: %w", err)
	}
	switch head.Type {
	case KindNewImage:
		var v NewImage
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindExistingImage:
		var v ExistingImage
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindEnrichedImage:
		var v EnrichedImage
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindText:
		var v Text
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindRectangle:
		var v Rectangle
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "":
		return nil, fmt.Errorf("design: item is missing the type discriminator")
	default:
		return nil, fmt.Errorf("design: unknown item type %q", head.Type)
	}
}

// MarshalItem encodes one item variant with its discriminator, the same form
// UnmarshalItem accepts.
func MarshalItem(it Item) ([]byte, error) {
	if it == nil {
		return nil, fmt.Errorf("design: nil item")
	}
	body, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	return injectType(body, it.Kind())
}

func injectType(body []byte, kind Kind) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"] = json.RawMessage(fmt.Sprintf("%q", kind))
	return json.Marshal(fields)
}

// Parse decodes and structurally validates a document in one step. It is the
// gate every model response passes before reaching the resolver.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
