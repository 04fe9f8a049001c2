package repository

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/events"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.snapshot")

const (
	snapshotIndexKey = "snapshots"
	// maxIndexedSnapshots bounds the index list; older IDs are trimmed on save.
	maxIndexedSnapshots = 1000

	fieldPayload       = "payload"
	fieldMode          = "mode"
	fieldAI            = "ai"
	fieldCurrentPlayer = "current_player"
	fieldTime          = "time"
)

type redisSnapshotRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSnapshotRepository creates a Redis-based SnapshotRepository.
// A zero ttl keeps snapshots until they are removed by hand.
func NewRedisSnapshotRepository(rdb *redis.Client, ttl time.Duration) SnapshotRepository {
	return &redisSnapshotRepository{rdb: rdb, ttl: ttl}
}

func snapshotKey(id string) string {
	return fmt.Sprintf("snapshot:%s", id)
}

func (r *redisSnapshotRepository) Name() string { return "redis" }

// Save stores the snapshot hash, indexes it and announces it on the events channel.
func (r *redisSnapshotRepository) Save(ctx context.Context, id string, snap export.Snapshot, payload []byte) error {
	ctx, span := tracer.Start(ctx, "SnapshotRepository.Save", trace.WithAttributes(
		attribute.String("snapshot.id", id),
		attribute.String("repository", "redis"),
	))
	defer span.End()

	key := snapshotKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		fieldPayload, payload,
		fieldMode, snap.Mode,
		fieldAI, snap.AI,
		fieldCurrentPlayer, string(snap.CurrentPlayer),
		fieldTime, snap.Time,
	)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	pipe.LPush(ctx, snapshotIndexKey, id)
	pipe.LTrim(ctx, snapshotIndexKey, 0, maxIndexedSnapshots-1)

	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save snapshot")
		return fmt.Errorf("failed to save snapshot in redis: %w", err)
	}

	event, err := events.New(events.TypeSnapshotExported, events.SnapshotExportedPayload{SnapshotID: id, Key: key})
	if err != nil {
		return fmt.Errorf("failed to build snapshot event: %w", err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot event: %w", err)
	}
	if err := r.rdb.Publish(ctx, events.EventsChannel, data).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish snapshot_exported event")
		return fmt.Errorf("failed to publish snapshot event: %w", err)
	}
	return nil
}

// FindByID returns the encoded snapshot.
func (r *redisSnapshotRepository) FindByID(ctx context.Context, id string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "SnapshotRepository.FindByID")
	defer span.End()

	payload, err := r.rdb.HGet(ctx, snapshotKey(id), fieldPayload).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get snapshot from redis: %w", err)
	}
	return payload, nil
}

// Recent returns the IDs of the latest snapshots, newest first. IDs whose
// hash has expired are skipped and removed from the index.
func (r *redisSnapshotRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	ctx, span := tracer.Start(ctx, "SnapshotRepository.Recent", trace.WithAttributes(
		attribute.Int("limit", limit),
	))
	defer span.End()

	if limit <= 0 {
		return []string{}, nil
	}
	ids, err := r.rdb.LRange(ctx, snapshotIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list snapshots")
		return nil, fmt.Errorf("failed to list snapshots from redis: %w", err)
	}

	pipe := r.rdb.Pipeline()
	exists := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		exists[i] = pipe.Exists(ctx, snapshotKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to check snapshots")
		return nil, fmt.Errorf("failed to check snapshots in redis: %w", err)
	}

	live := make([]string, 0, len(ids))
	for i, id := range ids {
		if exists[i].Val() > 0 {
			live = append(live, id)
			continue
		}
		if err := r.rdb.LRem(ctx, snapshotIndexKey, 0, id).Err(); err != nil {
			slog.WarnContext(ctx, "failed to drop expired snapshot from index", "snapshot.id", id, "error", err)
		}
	}
	return live, nil
}
