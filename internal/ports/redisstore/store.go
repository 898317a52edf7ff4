// Package redisstore keeps scored boards in Redis, one list per board.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"bridge/internal/domain"
	"bridge/internal/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bridge:board:"

// Store is a ports.ResultStore over a Redis client. RPUSH is atomic, so concurrent
// scorers never conflict.
type Store struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// Dial parses a redis:// URL and returns a store with its own client.
func Dial(url string) (*Store, *redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	return New(client), client, nil
}

func boardKey(board domain.BoardNumber) string {
	return fmt.Sprintf("%s%d", keyPrefix, board)
}

func (s *Store) SaveResult(ctx context.Context, result domain.ScoredBoard) error {
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := s.client.RPush(ctx, boardKey(result.Board), value).Err(); err != nil {
		return fmt.Errorf("failed to push result for board %d: %w", result.Board, err)
	}
	return nil
}

func (s *Store) BoardResults(ctx context.Context, board domain.BoardNumber) ([]domain.ScoredBoard, error) {
	values, err := s.client.LRange(ctx, boardKey(board), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read results for board %d: %w", board, err)
	}
	out := make([]domain.ScoredBoard, 0, len(values))
	for _, v := range values {
		var sb domain.ScoredBoard
		if err := json.Unmarshal([]byte(v), &sb); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result for board %d: %w", board, err)
		}
		out = append(out, sb)
	}
	return out, nil
}

var _ ports.ResultStore = (*Store)(nil)
