package leaderboard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderRanksByXP(t *testing.T) {
	p := NewStaticProvider()

	top, err := p.Top(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, "demo_aria", top[0].UserID)
	require.Equal(t, 1, top[0].Rank)
	require.Equal(t, 3, top[2].Rank)
	for i := 1; i < len(top); i++ {
		require.GreaterOrEqual(t, top[i-1].XP, top[i].XP)
	}
}

func TestStaticProviderRecordsLocalUser(t *testing.T) {
	p := NewStaticProvider()

	me := Entry{UserID: "me", DisplayName: "Me", XP: 10000, Level: 11}
	require.NoError(t, p.Record(context.Background(), me))

	top, err := p.Top(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, "me", top[1].UserID, "10000 XP slots in at second place")

	// Re-recording updates in place rather than duplicating.
	me.XP = 13000
	require.NoError(t, p.Record(context.Background(), me))
	top, err = p.Top(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, "me", top[0].UserID)
	require.Len(t, top, 6)
}

func newRedisProvider(t *testing.T) *RedisProvider {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisProviderFromClient(client)
}

func TestRedisProviderRoundTrip(t *testing.T) {
	p := newRedisProvider(t)
	ctx := context.Background()

	require.NoError(t, p.Record(ctx, Entry{UserID: "u1", DisplayName: "One", XP: 500, Level: 3}))
	require.NoError(t, p.Record(ctx, Entry{UserID: "u2", DisplayName: "Two", XP: 900, Level: 4}))
	require.NoError(t, p.Record(ctx, Entry{UserID: "u3", DisplayName: "Three", XP: 100, Level: 2}))

	top, err := p.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, Entry{UserID: "u2", DisplayName: "Two", XP: 900, Level: 4, Rank: 1}, top[0])
	require.Equal(t, "u1", top[1].UserID)
	require.Equal(t, 2, top[1].Rank)
}

func TestRedisProviderUpsertsScore(t *testing.T) {
	p := newRedisProvider(t)
	ctx := context.Background()

	require.NoError(t, p.Record(ctx, Entry{UserID: "u1", DisplayName: "One", XP: 100, Level: 2}))
	require.NoError(t, p.Record(ctx, Entry{UserID: "u1", DisplayName: "One", XP: 2500, Level: 6}))

	top, err := p.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, 2500, top[0].XP)
	require.Equal(t, 6, top[0].Level)
}
