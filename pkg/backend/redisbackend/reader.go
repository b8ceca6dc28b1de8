package redisbackend

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formkit/pkg/backend"
)

// DefaultPrefix namespaces the keys used by Reader.
const DefaultPrefix = "formkit:"

const (
	keyBlocklist = "blocklist"
	keyCounter   = "counter"
	keyConfig    = "config"

	fieldDefault = "default"
	fieldOptions = "options"
)

// Reader implements backend.Reader on Redis:
//
//	<prefix>blocklist  SET of folded taken names
//	<prefix>counter    integer bumped with INCR
//	<prefix>config     HASH with "default" and JSON-encoded "options"
//
// Every call is a single round trip and is not retried.
type Reader struct {
	client redis.UniversalClient
	prefix string
}

var _ backend.Reader = (*Reader)(nil)

// New returns a Reader using prefix for its keys, DefaultPrefix when empty.
func New(client redis.UniversalClient, prefix string) *Reader {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Reader{client: client, prefix: prefix}
}

func (r *Reader) key(name string) string { return r.prefix + name }

func (r *Reader) FetchInitialConfig(ctx context.Context) (backend.InitialConfig, error) {
	vals, err := r.client.HGetAll(ctx, r.key(keyConfig)).Result()
	if err != nil {
		return backend.InitialConfig{}, errors.Join(backend.ErrFetchConfig, err)
	}
	if len(vals) == 0 {
		return backend.InitialConfig{}, errors.Join(backend.ErrFetchConfig, ErrNotSeeded)
	}
	cfg := backend.InitialConfig{DefaultValue: vals[fieldDefault]}
	if raw := vals[fieldOptions]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Options); err != nil {
			return backend.InitialConfig{}, errors.Join(backend.ErrFetchConfig, err)
		}
	}
	return cfg, nil
}

func (r *Reader) FetchFreshCounter(ctx context.Context) (backend.Counter, error) {
	n, err := r.client.Incr(ctx, r.key(keyCounter)).Result()
	if err != nil {
		return backend.Counter{}, errors.Join(backend.ErrFetchCounter, err)
	}
	return backend.Counter{Counter: strconv.FormatInt(n, 10)}, nil
}

func (r *Reader) CheckUniqueness(ctx context.Context, candidate string) (backend.Uniqueness, error) {
	taken, err := r.client.SIsMember(ctx, r.key(keyBlocklist), backend.Fold(candidate)).Result()
	if err != nil {
		return backend.Uniqueness{}, errors.Join(backend.ErrCheckUniqueness, err)
	}
	if taken {
		return backend.Uniqueness{Valid: false, Suggestions: backend.Suggestions(candidate)}, nil
	}
	return backend.Uniqueness{Valid: true, Suggestions: []string{}}, nil
}

// Seed stores cfg and replaces the blocklist in one transaction. The counter
// is left alone so values stay distinct across restarts.
func (r *Reader) Seed(ctx context.Context, cfg backend.InitialConfig, blocklist []string) error {
	options, err := json.Marshal(cfg.Options)
	if err != nil {
		return errors.Join(ErrSeed, err)
	}
	members := make([]any, 0, len(blocklist))
	for _, name := range blocklist {
		members = append(members, backend.Fold(name))
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.key(keyConfig), fieldDefault, cfg.DefaultValue, fieldOptions, string(options))
		p.Del(ctx, r.key(keyBlocklist))
		if len(members) > 0 {
			p.SAdd(ctx, r.key(keyBlocklist), members...)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrSeed, err)
	}
	return nil
}

// ResetCounter deletes the counter so the next value is 1.
func (r *Reader) ResetCounter(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(keyCounter)).Err(); err != nil {
		return errors.Join(backend.ErrFetchCounter, err)
	}
	return nil
}
