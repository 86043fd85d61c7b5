// Package chatmodel holds the small shared contracts between the agent
// loop, the tools, and the message store: the chat context carried on
// context.Context and the common input error sentinel.
package chatmodel

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/google/uuid"
)

var (
	// ErrFailedUnmarshalInput is returned by a tool when the model supplied
	// arguments that do not match the tool's schema. The agent loop turns it
	// into a corrective tool message instead of failing the run.
	ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")

	// ErrInvalidChatContext is returned when a chat-scoped operation runs
	// without a ChatContext on the context.
	ErrInvalidChatContext = errors.New("invalid chat context")
)

// ContentProvider is implemented by tool and assistant results that can
// render themselves as message content.
type ContentProvider interface {
	GetContent() string
}

// ChatContext identifies one conversation.
type ChatContext interface {
	GetChatID() string
}

type chatContext struct {
	chatID string
}

func (c *chatContext) GetChatID() string {
	return c.chatID
}

// NewChatContext creates a ChatContext, generating a chat ID when none is
// provided.
func NewChatContext(chatID string) ChatContext {
	return &chatContext{
		chatID: values.StringsCoalesce(chatID, NewChatID()),
	}
}

type contextKey int

const (
	keyContext contextKey = iota
)

// WithChatContext returns a new context carrying the ChatContext value.
func WithChatContext(ctx context.Context, chatCtx ChatContext) context.Context {
	return context.WithValue(ctx, keyContext, chatCtx)
}

// GetChatContext retrieves the ChatContext from the context, or nil.
func GetChatContext(ctx context.Context) ChatContext {
	if v, ok := ctx.Value(keyContext).(ChatContext); ok {
		return v
	}
	return nil
}

// GetChatID returns the chat ID from the context, or an error when the
// context carries no chat.
func GetChatID(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(keyContext).(ChatContext); ok {
		return v.GetChatID(), nil
	}
	return "", errors.WithStack(ErrInvalidChatContext)
}

// NewChatID generates a new chat ID.
func NewChatID() string {
	return uuid.NewString()
}
