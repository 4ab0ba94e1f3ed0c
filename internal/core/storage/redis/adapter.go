// Package redis implements the submission store on a single Redis list,
// mirroring the hosted-KV deployment shape the service originally ran on.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	"github.com/hauspet-lab/hauspet-intake/internal/core/storage"
)

const (
	connectPingTimeout = 5 * time.Second

	// replaceRetries bounds the optimistic WATCH/EXEC loop in ReplaceAll.
	replaceRetries = 5
)

// Adapter implements storage.SubmissionStore on one Redis list. Each element
// is a JSON-encoded submission; RPUSH gives an atomic server-side append, so
// concurrent intake requests cannot lose records to a read-modify-write race.
type Adapter struct {
	client *redis.Client
	key    string
}

// NewAdapter connects to addr and verifies connectivity. key names the list
// holding the collection (one flat namespace, no per-record keys).
func NewAdapter(addr, password string, db int, key string) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("[Redis] Adapter initialized", "addr", addr, "key", key)

	return &Adapter{client: client, key: key}, nil
}

// Append pushes one JSON-encoded record onto the list tail.
func (a *Adapter) Append(ctx context.Context, sub *v1.Submission) (string, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission: %w", err)
	}

	if err := a.client.RPush(ctx, a.key, payload).Err(); err != nil {
		return "", fmt.Errorf("%w: failed to append submission: %v", storage.ErrUnavailable, err)
	}

	slog.Debug("[Redis] Saved submission", "id", sub.ID, "type", sub.Type)
	return sub.ID, nil
}

// ListAll reads the whole list. Elements that fail to decode are skipped
// with a warning rather than failing the read; a single corrupt entry must
// not take the admin view down.
func (a *Adapter) ListAll(ctx context.Context) ([]*v1.Submission, error) {
	raw, err := a.client.LRange(ctx, a.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read submission list: %v", storage.ErrUnavailable, err)
	}

	subs := make([]*v1.Submission, 0, len(raw))
	for i, item := range raw {
		var sub v1.Submission
		if err := json.Unmarshal([]byte(item), &sub); err != nil {
			slog.Warn("[Redis] Skipping undecodable submission entry", "index", i, "error", err)
			continue
		}
		subs = append(subs, &sub)
	}

	return subs, nil
}

// ReplaceAll writes the merged collection back under WATCH. The current
// list is re-read inside the watched transaction and its entries are kept
// in place; only records the list does not already hold (by id) are
// appended. An Append that lands after the caller's earlier read therefore
// survives the write-back, and a write that slips in between the re-read
// and EXEC fails the transaction so the next attempt starts from fresh
// state.
func (a *Adapter) ReplaceAll(ctx context.Context, subs []*v1.Submission) error {
	incoming := make([]struct {
		id      string
		payload []byte
	}, 0, len(subs))
	for _, sub := range subs {
		p, err := json.Marshal(sub)
		if err != nil {
			return fmt.Errorf("failed to marshal submission %s: %w", sub.ID, err)
		}
		incoming = append(incoming, struct {
			id      string
			payload []byte
		}{sub.ID, p})
	}

	txn := func(tx *redis.Tx) error {
		current, err := tx.LRange(ctx, a.key, 0, -1).Result()
		if err != nil {
			return err
		}

		held := make(map[string]struct{}, len(current))
		for _, item := range current {
			var sub v1.Submission
			if err := json.Unmarshal([]byte(item), &sub); err != nil {
				continue
			}
			held[sub.ID] = struct{}{}
		}

		payloads := make([]interface{}, 0, len(current)+len(incoming))
		for _, item := range current {
			payloads = append(payloads, item)
		}
		for _, in := range incoming {
			if _, ok := held[in.id]; ok {
				continue
			}
			payloads = append(payloads, in.payload)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, a.key)
			if len(payloads) > 0 {
				pipe.RPush(ctx, a.key, payloads...)
			}
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= replaceRetries; attempt++ {
		err := a.client.Watch(ctx, txn, a.key)
		if err == nil {
			slog.Info("[Redis] Replaced submission collection", "count", len(subs))
			return nil
		}
		if err == redis.TxFailedErr {
			slog.Warn("[Redis] Replace conflicted with concurrent write, retrying",
				"attempt", attempt)
			continue
		}
		return fmt.Errorf("%w: failed to replace submission list: %v", storage.ErrUnavailable, err)
	}

	return fmt.Errorf("failed to replace submission list after %d conflicts", replaceRetries)
}

// Durable reports true: the backing Redis is a managed persistent store.
func (a *Adapter) Durable() bool {
	return true
}

// Ping verifies connectivity.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

// Close releases the client.
func (a *Adapter) Close() error {
	return a.client.Close()
}
