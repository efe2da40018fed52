package curvestore

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set ALTCURVE_REDIS_ADDR to a redis server that may be written to, e.g.
// 127.0.0.1:6379.
func testRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("ALTCURVE_REDIS_ADDR")
	if addr == "" {
		t.Skip("ALTCURVE_REDIS_ADDR not set")
	}

	redisCli := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { redisCli.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.Nil(t, redisCli.Ping(ctx).Err())

	return redisCli
}

func TestRedisStorage(t *testing.T) {
	redisCli := testRedisClient(t)
	ctx := context.Background()
	preKey := "altcurve-test-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	t.Cleanup(func() {
		keys, _ := redisCli.Keys(ctx, preKey+":*").Result()
		if len(keys) > 0 {
			redisCli.Del(ctx, keys...)
		}
	})

	stg := NewRedisStorage(preKey, redisCli, l.NewConsoleLoggerWrapper())

	names, err := stg.List(ctx)
	assert.Nil(t, err)
	assert.Empty(t, names)

	_, err = stg.Load(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotExists))

	assert.Nil(t, stg.Save(ctx, "b", []byte("two")))
	assert.Nil(t, stg.Save(ctx, "a", []byte("one")))

	d, err := stg.Load(ctx, "a")
	assert.Nil(t, err)
	assert.Equal(t, "one", string(d))

	names, err = stg.List(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	assert.Nil(t, stg.Delete(ctx, "a"))
	assert.True(t, errors.Is(stg.Delete(ctx, "a"), ErrNotExists))

	names, err = stg.List(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestRedisStore(t *testing.T) {
	redisCli := testRedisClient(t)
	ctx := context.Background()
	preKey := "altcurve-test-" + strconv.FormatInt(time.Now().UnixNano(), 36)

	t.Cleanup(func() {
		keys, _ := redisCli.Keys(ctx, preKey+":*").Result()
		if len(keys) > 0 {
			redisCli.Del(ctx, keys...)
		}
	})

	s := NewStore(NewRedisStorage(preKey, redisCli, nil), WithFormat(YAML))

	name, err := s.Add(ctx, testCurve())
	require.Nil(t, err)

	v, err := s.Eval(ctx, name, 2.5)
	assert.Nil(t, err)
	assert.EqualValues(t, 12.5, v)

	d, err := redisCli.Get(ctx, preKey+":curve:"+name).Bytes()
	assert.Nil(t, err)
	assert.Contains(t, string(d), "_ace_v: 1")
}
