package conversation

import (
	"encoding/json"
	"fmt"

	"designforge/internal/domain/design"
)

// defaultArtboardHint keeps the instruction well formed when neither the
// caller nor a previous document supplies a size.
const defaultArtboardHint = "1080x1080"

const conceptInstruction = `You are a senior creative graphic designer producing a design concept for a client brief.
Analyze any provided images and the user's request, then describe exactly how you would build a design that meets their needs.
Consider layout, colors, typography, and overall aesthetic.
The concept will be handed to an implementer who will execute it exactly as written and add nothing of their own, so it must be complete and implementer-ready.
List every idea, keep a consistent theme, and cover both the big moves and the small details.
You MUST describe the exact position, size, rotation, and color of every element in the final design. All values are in pixels.
Reply with the design concept only, in markdown prose. Do not reply with JSON.`

const designInstructionHeader = `You are a graphic designer that produces structured design documents.
The artboard is the entire area of the design; anything outside it is cropped, and you may place elements beyond its edge for bleed effects.

Response rules:
1. Respond ONLY with raw JSON that conforms to the provided schema. No markdown fences, explanations, or comments.
2. Describe every new image in detail; the description becomes the prompt that generates it.
3. Existing images are reused by id. Reference an id exactly as previously seen; never invent ids.

Design rules:
4. Use as many elements as the design needs, and specify each element individually with its own position.
5. Layering matters: control paint order with zIndex. Text usually sits above other elements.
6. The background color should suit the design; use images to enhance the background rather than replace it.
7. For text, set fitText true to let the text scale to its box, or set fitText false and give an explicit fontSize.
8. Follow the concept below exactly and include ALL of its elements.

Current artboard size: %s. You may change it if the design requires.

The current design is included below in JSON. Edit this JSON to produce the next design state. Any item you omit from your response is DELETED from the canvas; omit items only when removal is intended.

Current design JSON:
%s

Design concept to follow strictly:
%s`

// BuildConceptRequest returns a conversation ready for a free-text concept
// generation: the caller's history, untouched, with the concept instruction
// appended as the final message so it overrides earlier guidance.
func BuildConceptRequest(history Conversation) Conversation {
	return history.Append(TextMessage(RoleDeveloper, conceptInstruction))
}

// BuildDesignRequest returns a conversation for the schema-bound design
// generation. The previous document is embedded verbatim so the model edits
// rather than starting over; a nil previous document embeds an empty
// placeholder. The instruction states the deletion-by-omission contract.
func BuildDesignRequest(history Conversation, concept string, previous *design.Document, artboardHint string) (Conversation, error) {
	prevJSON := "{}"
	if previous != nil {
		raw, err := json.Marshal(previous)
		if err != nil {
			return Conversation{}, fmt.Errorf("conversation: serialize previous design: %w", err)
		}
		prevJSON = string(raw)
	}
	if artboardHint == "" && previous != nil {
		artboardHint = fmt.Sprintf("%.0fx%.0f", previous.Artboard.Width, previous.Artboard.Height)
	}
	if artboardHint == "" {
		artboardHint = defaultArtboardHint
	}
	instruction := fmt.Sprintf(designInstructionHeader, artboardHint, prevJSON, concept)
	return history.Append(TextMessage(RoleDeveloper, instruction)), nil
}
