package curvestore

import (
	"context"
	"errors"
	"slices"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
)

// NewRedisStorage returns a storage keeping each curve in a string key
// below preKey. The names of all curves are kept in a set, so that listing
// doesn't need to scan the key space.
func NewRedisStorage(preKey string, redisCli *redis.Client, logger l.Wrapper) Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisCurveStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorage{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type redisStorage struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (impl *redisStorage) curveKey(name string) string {
	return impl.preKey + ":curve:" + name
}

func (impl *redisStorage) namesKey() string {
	return impl.preKey + ":names"
}

func (impl *redisStorage) Load(ctx context.Context, name string) ([]byte, error) {
	d, err := impl.redisCli.Get(ctx, impl.curveKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotExists
	}
	return d, err
}

func (impl *redisStorage) Save(ctx context.Context, name string, data []byte) error {
	_, err := impl.redisCli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, impl.curveKey(name), data, 0)
		pipe.SAdd(ctx, impl.namesKey(), name)
		return nil
	})
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("save curve failed")
	}
	return err
}

func (impl *redisStorage) Delete(ctx context.Context, name string) error {
	var del *redis.IntCmd
	_, err := impl.redisCli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, impl.curveKey(name))
		pipe.SRem(ctx, impl.namesKey(), name)
		return nil
	})
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("delete curve failed")
		return err
	}
	if del.Val() == 0 {
		return ErrNotExists
	}
	return nil
}

func (impl *redisStorage) List(ctx context.Context) ([]string, error) {
	names, err := impl.redisCli.SMembers(ctx, impl.namesKey()).Result()
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}
