package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/storage"
)

// ErrTxConflict is returned when an optimistic transaction keeps losing
// write-write conflicts and exhausts its retries.
var ErrTxConflict = errors.New("transaction aborted after repeated conflicts")

// Storage is a Redis-backed implementation of the storage interface.
//
// Records are JSON documents. Transactions are optimistic: every key a
// transaction reads is WATCHed, staged writes are flushed in one
// MULTI/EXEC, and the whole callback is retried when EXEC reports a
// conflicting concurrent write. Secondary indexes are updated in the same
// MULTI/EXEC as the documents they index, so they are never observably
// stale.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// RunTransaction runs fn optimistically, retrying on conflict.
func (s *Storage) RunTransaction(ctx context.Context, fn func(tx storage.Txn) error) error {
	retries := s.cfg.MaxTxRetries
	if retries <= 0 {
		retries = DefaultConfig().MaxTxRetries
	}

	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			t := newTxn(ctx, rtx)
			if err := fn(t); err != nil {
				return err
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				t.flush(pipe)
				return nil
			})
			return err
		})
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTxConflict
}

// txn implements storage.Txn over a watched Redis connection. Reads go
// through an overlay of staged writes so a transaction sees its own
// effects; the op list preserves write order for the final MULTI/EXEC.
type txn struct {
	ctx context.Context
	rtx *redis.Tx

	watched map[string]bool

	staged    map[string][]byte
	stagedDel map[string]bool
	// setOverlay tracks staged SET membership changes: true = added,
	// false = removed
	setOverlay map[string]map[string]bool

	ops []func(pipe redis.Pipeliner)
}

var _ storage.Txn = (*txn)(nil)

func newTxn(ctx context.Context, rtx *redis.Tx) *txn {
	return &txn{
		ctx:        ctx,
		rtx:        rtx,
		watched:    make(map[string]bool),
		staged:     make(map[string][]byte),
		stagedDel:  make(map[string]bool),
		setOverlay: make(map[string]map[string]bool),
	}
}

func (t *txn) flush(pipe redis.Pipeliner) {
	for _, op := range t.ops {
		op(pipe)
	}
}

func (t *txn) watch(key string) error {
	if t.watched[key] {
		return nil
	}
	if err := t.rtx.Watch(t.ctx, key).Err(); err != nil {
		return err
	}
	t.watched[key] = true
	return nil
}

// get reads a key through the staged overlay. Missing keys are reported
// via redis.Nil.
func (t *txn) get(key string) ([]byte, error) {
	if t.stagedDel[key] {
		return nil, redis.Nil
	}
	if data, ok := t.staged[key]; ok {
		return data, nil
	}
	if err := t.watch(key); err != nil {
		return nil, err
	}
	return t.rtx.Get(t.ctx, key).Bytes()
}

func (t *txn) getJSON(key string, v any) (bool, error) {
	data, err := t.get(key)
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// smembers reads a SET through the staged membership overlay.
func (t *txn) smembers(key string) ([]string, error) {
	var members []string
	if !t.stagedDel[key] {
		if err := t.watch(key); err != nil {
			return nil, err
		}
		base, err := t.rtx.SMembers(t.ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		members = base
	}
	overlay := t.setOverlay[key]
	if len(overlay) == 0 {
		return members, nil
	}
	out := members[:0]
	for _, m := range members {
		if added, ok := overlay[m]; !ok || added {
			out = append(out, m)
		}
	}
	for m, added := range overlay {
		if added && !contains(out, m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func (t *txn) stageSetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	t.staged[key] = data
	delete(t.stagedDel, key)
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Set(t.ctx, key, data, 0)
	})
	return nil
}

func (t *txn) stageSetString(key, value string) error {
	data := []byte(value)
	t.staged[key] = data
	delete(t.stagedDel, key)
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Set(t.ctx, key, data, 0)
	})
	return nil
}

func (t *txn) stageDel(key string) {
	delete(t.staged, key)
	t.stagedDel[key] = true
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.Del(t.ctx, key)
	})
}

func (t *txn) stageSAdd(key, member string) {
	if t.setOverlay[key] == nil {
		t.setOverlay[key] = make(map[string]bool)
	}
	t.setOverlay[key][member] = true
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.SAdd(t.ctx, key, member)
	})
}

func (t *txn) stageSRem(key, member string) {
	if t.setOverlay[key] == nil {
		t.setOverlay[key] = make(map[string]bool)
	}
	t.setOverlay[key][member] = false
	t.ops = append(t.ops, func(pipe redis.Pipeliner) {
		pipe.SRem(t.ctx, key, member)
	})
}

// lookupUser is a nil-on-missing read used for index maintenance.
func (t *txn) lookupUser(email model.Email) (*model.User, error) {
	var u model.User
	found, err := t.getJSON(userKey(email), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (t *txn) lookupInvite(email model.Email) (*model.Invite, error) {
	var inv model.Invite
	found, err := t.getJSON(inviteKey(email), &inv)
	if err != nil || !found {
		return nil, err
	}
	return &inv, nil
}

func (t *txn) lookupSlot(campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error) {
	var sl model.Slot
	found, err := t.getJSON(slotKey(campaignID, slotID), &sl)
	if err != nil || !found {
		return nil, err
	}
	return &sl, nil
}
