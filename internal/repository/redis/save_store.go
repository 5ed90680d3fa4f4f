package redis

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-cli/internal/domain"
)

const (
	saveKeyPrefix = "connect4:save:"
	saveIndexKey  = "connect4:saves"
)

// Cache is the subset of redis commands the save store needs.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRem(ctx context.Context, key string, members ...string) error
}

var _ Cache = (*RedisCache)(nil)

// SaveStore keeps each save under its own key and tracks names in a set.
type SaveStore struct {
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewSaveStore builds the store. A zero ttl keeps saves forever.
func NewSaveStore(cache Cache, ttl time.Duration, logger *zap.Logger) *SaveStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveStore{cache: cache, ttl: ttl, logger: logger.Named("redis-store")}
}

func (s *SaveStore) Save(ctx context.Context, name string, payload []byte) (string, error) {
	name = strings.TrimSpace(name)
	key, err := saveKey(name)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		return "", errors.Wrapf(err, "failed to store save %s", name)
	}
	if err := s.cache.SAdd(ctx, saveIndexKey, name); err != nil {
		// the save itself is stored, only listing is affected
		s.logger.Warn("failed to index save", zap.String("name", name), zap.Error(err))
	}

	s.logger.Info("game saved", zap.String("key", key), zap.Int("bytes", len(payload)))
	return "redis://" + key, nil
}

func (s *SaveStore) Load(ctx context.Context, name string) ([]byte, error) {
	key, err := saveKey(name)
	if err != nil {
		return nil, err
	}
	val, err := s.cache.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(domain.ErrSaveNotFound, "%s", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read save %s", name)
	}
	return []byte(val), nil
}

// List returns indexed names whose key still exists; expired entries are
// pruned from the index on the way.
func (s *SaveStore) List(ctx context.Context) ([]string, error) {
	members, err := s.cache.SMembers(ctx, saveIndexKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list saves")
	}

	names := make([]string, 0, len(members))
	for _, name := range members {
		key, err := saveKey(name)
		if err != nil {
			continue
		}
		_, err = s.cache.Get(ctx, key)
		if errors.Is(err, redis.Nil) {
			if err := s.cache.SRem(ctx, saveIndexKey, name); err != nil {
				s.logger.Warn("failed to prune save index", zap.String("name", name), zap.Error(err))
			}
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check save %s", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func saveKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return "", errors.Wrapf(domain.ErrInvalidSaveName, "%q", name)
	}
	return saveKeyPrefix + name, nil
}
