package llm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDocumentSchemaShape(t *testing.T) {
	schema := DocumentSchema()

	raw, err := json.Marshal(schema)
	if err != nil {
		t.Fatal(err)
	}
	// Strict mode needs every object closed and all fields required.
	if strings.Contains(string(raw), `"additionalProperties":true`) {
		t.Fatal("schema must close every object")
	}
	// Strict mode rejects oneOf; the item union must use anyOf.
	if strings.Contains(string(raw), `"oneOf"`) {
		t.Fatal("schema must not use oneOf")
	}

	props := schema["properties"].(map[string]any)
	for _, key := range []string{"concept", "background", "artboard", "items"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing top-level property %q", key)
		}
	}

	placed := props["items"].(map[string]any)["items"].(map[string]any)
	item := placed["properties"].(map[string]any)["item"].(map[string]any)
	variants := item["anyOf"].([]any)

	var kinds []string
	for _, v := range variants {
		typeProp := v.(map[string]any)["properties"].(map[string]any)["type"].(map[string]any)
		kinds = append(kinds, typeProp["const"].(string))
	}
	// The model must never emit enriched images; those only come from the
	// resolver.
	want := []string{"new_image", "existing_image", "text", "rectangle"}
	if len(kinds) != len(want) {
		t.Fatalf("got variants %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got variants %v, want %v", kinds, want)
		}
	}
}

func TestDocumentSchemaRequiredIsSorted(t *testing.T) {
	schema := DocumentSchema()
	required := schema["required"].([]string)
	for i := 1; i < len(required); i++ {
		if required[i-1] > required[i] {
			t.Fatalf("required fields not sorted: %v", required)
		}
	}
}
