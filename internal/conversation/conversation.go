package conversation

// Role tags who authored a message. Developer messages carry pipeline
// instructions and take precedence over anything earlier in the transcript.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartType discriminates message content parts.
type PartType string

const (
	PartText           PartType = "text"
	PartImageReference PartType = "image_reference"
)

// Part is one piece of message content: either text or a reference to an
// image the model should look at.
type Part struct {
	Type     PartType `json:"type"`
	Text     string   `json:"text,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// Message is one role-tagged turn.
type Message struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// Conversation is an ordered transcript. Builders never mutate a caller's
// conversation; they clone and append.
type Conversation struct {
	Messages []Message `json:"messages"`
}

// TextMessage builds a single-part text message.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Parts: []Part{{Type: PartText, Text: text}}}
}

// ImageMessage builds a message carrying an image reference, with optional
// accompanying text.
func ImageMessage(role Role, text, imageURL string) Message {
	parts := make([]Part, 0, 2)
	if text != "" {
		parts = append(parts, Part{Type: PartText, Text: text})
	}
	parts = append(parts, Part{Type: PartImageReference, ImageURL: imageURL})
	return Message{Role: role, Parts: parts}
}

// Clone deep-copies the conversation so the copy can be extended without
// touching the source. The caller may be holding the source for a parallel
// or retried request.
func (c Conversation) Clone() Conversation {
	out := Conversation{}
	if c.Messages == nil {
		return out
	}
	out.Messages = make([]Message, len(c.Messages))
	for i, msg := range c.Messages {
		cp := Message{Role: msg.Role}
		if msg.Parts != nil {
			cp.Parts = make([]Part, len(msg.Parts))
			copy(cp.Parts, msg.Parts)
		}
		out.Messages[i] = cp
	}
	return out
}

// Append returns a new conversation with msg added as the final message.
func (c Conversation) Append(msg Message) Conversation {
	out := c.Clone()
	out.Messages = append(out.Messages, msg)
	return out
}

// Last returns the final message, if any.
func (c Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
