package conversation

import (
	"strings"
	"testing"

	"designforge/internal/domain/design"
)

func history() Conversation {
	var c Conversation
	c = c.Append(TextMessage(RoleUser, "make me a poster for a jazz night"))
	c = c.Append(TextMessage(RoleAssistant, "A moody poster with a saxophone silhouette."))
	c = c.Append(ImageMessage(RoleUser, "use this photo", "https://assets.example/sax.jpg"))
	return c
}

func TestBuildConceptRequest(t *testing.T) {
	h := history()
	before := len(h.Messages)

	req := BuildConceptRequest(h)

	if len(h.Messages) != before {
		t.Fatalf("caller history mutated: %d messages, want %d", len(h.Messages), before)
	}
	if len(req.Messages) != before+1 {
		t.Fatalf("got %d messages, want %d", len(req.Messages), before+1)
	}
	last, ok := req.Last()
	if !ok || last.Role != RoleDeveloper {
		t.Fatalf("final message role = %q, want developer", last.Role)
	}
	if !strings.Contains(last.Parts[0].Text, "design concept") {
		t.Fatalf("instruction missing from final message: %q", last.Parts[0].Text)
	}
}

func TestBuildDesignRequestEmbedsPreviousDocument(t *testing.T) {
	prev := &design.Document{
		Concept:    "jazz night",
		Background: "#101020",
		Artboard:   design.Artboard{Width: 800, Height: 1200},
		Items: []design.PlacedItem{
			{Width: 100, Height: 50, Opacity: 100, Item: design.Text{Text: "JAZZ", Align: design.AlignCenter}},
		},
	}

	req, err := BuildDesignRequest(history(), "the concept text", prev, "")
	if err != nil {
		t.Fatal(err)
	}
	last, _ := req.Last()
	instr := last.Parts[0].Text

	for _, want := range []string{
		`"background":"#101020"`,
		`"text":"JAZZ"`,
		"800x1200",
		"the concept text",
		"omit from your response is DELETED",
	} {
		if !strings.Contains(instr, want) {
			t.Errorf("instruction missing %q", want)
		}
	}
	if last.Role != RoleDeveloper {
		t.Errorf("instruction role = %q, want developer", last.Role)
	}
}

func TestBuildDesignRequestWithoutPreviousDocument(t *testing.T) {
	req, err := BuildDesignRequest(history(), "concept", nil, "1080x1080")
	if err != nil {
		t.Fatal(err)
	}
	last, _ := req.Last()
	if !strings.Contains(last.Parts[0].Text, "Current design JSON:\n{}") {
		t.Fatalf("empty previous design not embedded as placeholder")
	}
	if !strings.Contains(last.Parts[0].Text, "1080x1080") {
		t.Fatalf("artboard hint not embedded")
	}
}

func TestBuildDesignRequestDefaultsArtboardHint(t *testing.T) {
	req, err := BuildDesignRequest(history(), "concept", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	last, _ := req.Last()
	if strings.Contains(last.Parts[0].Text, "Current artboard size: .") {
		t.Fatal("empty hint rendered an empty artboard size")
	}
	if !strings.Contains(last.Parts[0].Text, "Current artboard size: "+defaultArtboardHint) {
		t.Fatalf("default hint missing:\n%s", last.Parts[0].Text)
	}
}

func TestCloneIsolation(t *testing.T) {
	h := history()
	cp := h.Clone()
	cp.Messages[0].Parts[0].Text = "changed"
	if h.Messages[0].Parts[0].Text == "changed" {
		t.Fatal("clone shares part storage with source")
	}
}
