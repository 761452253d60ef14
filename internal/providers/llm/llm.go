package llm

import (
	"context"

	"designforge/internal/conversation"
	"designforge/internal/domain/design"
)

// Client is the gateway to the language model. Implementations must not
// mutate the conversation they are handed and must not retry on failure;
// retry policy belongs to the caller so idempotence reasoning stays local.
type Client interface {
	// GenerateText sends the conversation and returns the model's free-text
	// reply. An empty reply is domain.ErrEmptyResponse.
	GenerateText(ctx context.Context, conv conversation.Conversation) (string, error)

	// GenerateDesign sends the conversation constrained to the design
	// document schema and returns the validated document. Output that cannot
	// be parsed or fails validation is domain.ErrSchemaViolation; there is no
	// silent coercion.
	GenerateDesign(ctx context.Context, conv conversation.Conversation) (*design.Document, error)
}
