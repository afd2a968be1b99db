package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/model"
)

// ChatRepo caches the conversation of a session in a capped Redis list.
type ChatRepo interface {
	Append(ctx context.Context, userID, sessionID uuid.UUID, msg model.ChatMessage) error
	List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.ChatMessage, error)
	Clear(ctx context.Context, userID, sessionID uuid.UUID) error
}

type chatRepo struct {
	rdb         *redis.Client
	ttl         time.Duration
	maxMessages int64
}

func NewChatRepo(rdb *redis.Client, ttl time.Duration, maxMessages int) ChatRepo {
	return &chatRepo{rdb: rdb, ttl: ttl, maxMessages: int64(maxMessages)}
}

func chatKey(userID, sessionID uuid.UUID) string {
	return fmt.Sprintf("chat:%s:%s", userID, sessionID)
}

func (r *chatRepo) Append(ctx context.Context, userID, sessionID uuid.UUID, msg model.ChatMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	b, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal chat message: %w", err)
	}

	key := chatKey(userID, sessionID)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, b)
	if r.maxMessages > 0 {
		pipe.LTrim(ctx, key, -r.maxMessages, -1)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *chatRepo) List(ctx context.Context, userID, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	raw, err := r.rdb.LRange(ctx, chatKey(userID, sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.ChatMessage, 0, len(raw))
	for _, s := range raw {
		var m model.ChatMessage
		if err := sonic.UnmarshalString(s, &m); err != nil {
			return nil, fmt.Errorf("unmarshal chat message: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *chatRepo) Clear(ctx context.Context, userID, sessionID uuid.UUID) error {
	return r.rdb.Del(ctx, chatKey(userID, sessionID)).Err()
}
