package state

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Manager tracks the global scan offset, the next unscanned catalog
// position. The offset only moves forward; committing a smaller value is a
// no-op, so resuming an old page can never rewind overall progress.
type Manager interface {
	ScanOffset(ctx context.Context) (int, error)
	AdvanceScanOffset(ctx context.Context, offset int) error
}

type redisManager struct {
	redisClient *redis.Client
	key         string
}

// NewRedisManager returns a Manager backed by Redis so a restarted process
// resumes from the last committed offset. A single scanning process is
// assumed; there is no cross-process coordination.
func NewRedisManager(redisClient *redis.Client) Manager {
	return &redisManager{
		redisClient: redisClient,
		key:         "steamdeals:progress:offset",
	}
}

func (m *redisManager) ScanOffset(ctx context.Context) (int, error) {
	val, err := m.redisClient.Get(ctx, m.key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // No progress saved yet
		}
		return 0, fmt.Errorf("failed to get scan offset: %w", err)
	}

	offset, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse scan offset: %w", err)
	}

	return offset, nil
}

func (m *redisManager) AdvanceScanOffset(ctx context.Context, offset int) error {
	current, err := m.ScanOffset(ctx)
	if err != nil {
		return err
	}
	if offset <= current {
		return nil
	}

	if err := m.redisClient.Set(ctx, m.key, offset, 0).Err(); err != nil {
		return fmt.Errorf("failed to set scan offset: %w", err)
	}
	return nil
}
