package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_Window(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "alice")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "bob")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "alice")
	assert.True(t, ok, "window resets")
}

func TestUnlimited(t *testing.T) {
	ok, err := Unlimited{}.Allow(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisLimiter_BadURL(t *testing.T) {
	_, err := NewRedisLimiter("not-a-url", 1, time.Minute)
	assert.Error(t, err)
}

func TestRedisLimiter_FailsOpenWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	l := NewRedisLimiterWithClient(client, 1, time.Minute)
	defer l.Close()

	ok, err := l.Allow(context.Background(), "alice")
	assert.Error(t, err)
	assert.True(t, ok)
}

// fakeRedis answers SET NX and INCR in process and records every command.
type fakeRedis struct {
	counts   map[string]int64
	windows  int
	commands []redis.Cmder
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeRedis) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.reply(cmd)
		return nil
	}
}

func (f *fakeRedis) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			f.reply(cmd)
		}
		return nil
	}
}

func (f *fakeRedis) reply(cmd redis.Cmder) {
	f.commands = append(f.commands, cmd)
	args := cmd.Args()

	switch cmd.Name() {
	case "set":
		key := args[1].(string)
		_, exists := f.counts[key]
		if !exists {
			f.counts[key] = 0
			f.windows++
		}
		if c, ok := cmd.(*redis.BoolCmd); ok {
			c.SetVal(!exists)
		}
	case "incr":
		key := args[1].(string)
		f.counts[key]++
		cmd.(*redis.IntCmd).SetVal(f.counts[key])
	}
}

// expire drops every key as if its TTL had run out.
func (f *fakeRedis) expire() { f.counts = map[string]int64{} }

func TestRedisLimiter_WindowIsNotExtended(t *testing.T) {
	fake := &fakeRedis{counts: map[string]int64{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(fake)
	l := NewRedisLimiterWithClient(client, 2, time.Minute)
	defer l.Close()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, fake.windows, "only the first attempt starts a window")

	var sets int
	for _, cmd := range fake.commands {
		assert.NotContains(t, []string{"expire", "pexpire"}, cmd.Name())
		if cmd.Name() != "set" {
			continue
		}
		sets++
		args := cmd.Args()
		assert.Equal(t, "poolkeeper:ratelimit:alice", args[1])
		assert.Contains(t, args, "nx")
		assert.Contains(t, args, "ex")
	}
	assert.Equal(t, 5, sets)

	fake.expire()
	ok, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok, "window resets once the key expires")
	assert.Equal(t, 2, fake.windows)
}
