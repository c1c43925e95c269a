package job

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhdao/carlex/internal/platform/constants"
	"github.com/minhdao/carlex/internal/platform/dberr"
)

// Checkpointer persists a job's keyset cursor between batches so an
// interrupted run resumes from its last completed batch.
type Checkpointer interface {
	// Load returns the saved cursor for a job, or "" when none exists.
	Load(ctx context.Context, job string) (string, error)
	// Save stores the cursor for a job.
	Save(ctx context.Context, job, cursor string) error
	// Clear removes the checkpoint after a run completes.
	Clear(ctx context.Context, job string) error
}

// RedisCheckpointStore keeps checkpoints in Redis under
// [constants.CheckpointKeyPrefix] with a TTL, so the checkpoint of an
// abandoned run expires instead of silently skipping rows forever.
type RedisCheckpointStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCheckpointStore(client *redis.Client, ttl time.Duration) *RedisCheckpointStore {
	return &RedisCheckpointStore{client: client, ttl: ttl}
}

func checkpointKey(job string) string {
	return constants.CheckpointKeyPrefix + job
}

func (store *RedisCheckpointStore) Load(ctx context.Context, job string) (string, error) {
	cursor, err := store.client.Get(ctx, checkpointKey(job)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", dberr.Wrap(err, "load_checkpoint")
	}
	return cursor, nil
}

func (store *RedisCheckpointStore) Save(ctx context.Context, job, cursor string) error {
	if err := store.client.Set(ctx, checkpointKey(job), cursor, store.ttl).Err(); err != nil {
		return dberr.Wrap(err, "save_checkpoint")
	}
	return nil
}

func (store *RedisCheckpointStore) Clear(ctx context.Context, job string) error {
	if err := store.client.Del(ctx, checkpointKey(job)).Err(); err != nil {
		return dberr.Wrap(err, "clear_checkpoint")
	}
	return nil
}
