package llm

import "sort"

// DocumentSchema returns the JSON Schema the structured design request is
// constrained to. It mirrors internal/domain/design exactly: a document with
// concept, background, artboard and placed items whose item field is a
// tagged union on "type". Field descriptions double as model guidance.
func DocumentSchema() map[string]any {
	newImage := object(map[string]any{
		"type":        constant("new_image"),
		"description": str("An extremely detailed description of the image; it becomes the generation prompt"),
		"colors":      arr(str("Hex values of colors in the image")),
		"objects":     arr(str("Objects in the image")),
		"mood":        str("The mood of the image"),
		"composition": arr(str("Composition notes for the image")),
		"style":       str("The style of the image"),
		"width":       num("Desired natural width of the image in pixels"),
		"height":      num("Desired natural height of the image in pixels"),
		"remove_background": map[string]any{
			"type":        "boolean",
			"description": "Whether to remove the background in post-processing after generation",
		},
	})
	existingImage := object(map[string]any{
		"type": constant("existing_image"),
		"id":   str("The id of an existing image, exactly as previously seen"),
	})
	text := object(map[string]any{
		"type":       constant("text"),
		"text":       str("The text to display"),
		"font":       str("The font family to use"),
		"fontSize":   num("Font size in pixels; ignored when fitText is true"),
		"fontWeight": num("Numeric font weight"),
		"fontColor":  str("Font color in hex"),
		"fontStyle":  str("Font style"),
		"width":      num("Width of the text box in pixels"),
		"align": map[string]any{
			"type":        "string",
			"enum":        []string{"left", "center", "right"},
			"description": "Horizontal alignment of the text in its box",
		},
		"wrap":      boolean("Whether the text wraps"),
		"bold":      boolean("Whether the text is bold"),
		"italic":    boolean("Whether the text is italic"),
		"underline": boolean("Whether the text is underlined"),
		"fitText":   boolean("Whether the text scales to fit its box instead of using fontSize"),
	})
	rectangle := object(map[string]any{
		"type":        constant("rectangle"),
		"fill":        str("Fill color in hex"),
		"stroke":      str("Stroke color in hex"),
		"strokeWidth": num("Stroke width in pixels"),
	})

	placedItem := object(map[string]any{
		"x":        num("X coordinate of the top left of the item's bounding box"),
		"y":        num("Y coordinate of the top left of the item's bounding box"),
		"width":    num("Width of the bounding box"),
		"height":   num("Height of the bounding box"),
		"rotation": num("Rotation of the item in degrees"),
		"zIndex":   num("Paint-order key; higher paints later"),
		"opacity":  num("Opacity from 0 to 100 percent, default 100"),
		"item": map[string]any{
			// Strict structured-output mode rejects oneOf; anyOf is the
			// accepted union keyword.
			"anyOf": []any{newImage, existingImage, text, rectangle},
		},
	})

	return object(map[string]any{
		"concept":    str("A concept for the design"),
		"background": str("The background color of the design as a single hex value, e.g. #ffffff"),
		"artboard": object(map[string]any{
			"width":  num("Width of the artboard in pixels"),
			"height": num("Height of the artboard in pixels"),
		}),
		"items": map[string]any{
			"type":  "array",
			"items": placedItem,
		},
	})
}

func object(props map[string]any) map[string]any {
	required := make([]string, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	sort.Strings(required)
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func constant(v string) map[string]any {
	return map[string]any{"type": "string", "const": v}
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func num(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func boolean(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func arr(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}
