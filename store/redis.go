package store

import (
	"context"
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/dumptruck-ai/agents/chatmodel"
	"github.com/dumptruck-ai/agents/llms"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// maxStoredMessages bounds the history kept per chat.
const maxStoredMessages = 50

// The redis store implements MessageStore using Redis as the backend.
// Keys are namespaced as /<prefix>/chatstore/<chatID>.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a message store backed by Redis.
func NewRedisStore(client *redis.Client, prefix string) MessageStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (m *redisStore) messagesKey(chatID string) string {
	return path.Join(m.prefix, "chatstore", chatID)
}

func (m *redisStore) Messages(ctx context.Context) []llms.Message {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "GetChatID", "err", err.Error())
		return nil
	}

	data, err := m.client.LRange(ctx, m.messagesKey(chatID), 0, -1).Result()
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "LRange", "err", err.Error())
		return nil
	}

	var messages []llms.Message
	for _, item := range data {
		var model llms.MessageModel
		if err := json.Unmarshal([]byte(item), &model); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal message", "err", err.Error())
			continue
		}
		messages = append(messages, model.ToMessage())
	}
	return messages
}

func (m *redisStore) Add(ctx context.Context, msgs ...llms.Message) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	key := m.messagesKey(chatID)
	pipe := m.client.Pipeline()
	for _, msg := range msgs {
		data, err := json.Marshal(llms.ConvertMessageToModel(msg))
		if err != nil {
			return errors.Wrap(err, "failed to marshal message")
		}
		pipe.RPush(ctx, key, data)
	}
	// Keep only the most recent history
	pipe.LTrim(ctx, key, -maxStoredMessages, -1)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to store messages in Redis")
	}
	return nil
}

func (m *redisStore) Reset(ctx context.Context) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	if err := m.client.Del(ctx, m.messagesKey(chatID)).Err(); err != nil {
		return errors.Wrap(err, "failed to reset chat in Redis")
	}
	return nil
}
