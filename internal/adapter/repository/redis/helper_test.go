package redis

import (
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient starts a miniredis server with a client bound to it.
// The client is closed when the test ends; retries are off so a stopped
// server fails fast.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr:       mr.Addr(),
		ClientName: "spendwise-test",
		MaxRetries: -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// keysUnder returns the sorted keys stored below prefix.
func keysUnder(mr *miniredis.Miniredis, prefix string) []string {
	var keys []string
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}
