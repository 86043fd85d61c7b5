package chatmodel_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/chatmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ChatContext(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, chatmodel.GetChatContext(ctx))
	_, err := chatmodel.GetChatID(ctx)
	assert.True(t, errors.Is(err, chatmodel.ErrInvalidChatContext))

	cc := chatmodel.NewChatContext("chat123")
	ctx = chatmodel.WithChatContext(ctx, cc)

	id, err := chatmodel.GetChatID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chat123", id)
	assert.Equal(t, cc, chatmodel.GetChatContext(ctx))
}

func Test_ChatContext_GeneratedID(t *testing.T) {
	cc := chatmodel.NewChatContext("")
	assert.NotEmpty(t, cc.GetChatID())
	assert.NotEqual(t, cc.GetChatID(), chatmodel.NewChatContext("").GetChatID())
}
