package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrLockNotAcquired is returned when another holder keeps the lock.
var ErrLockNotAcquired = errors.New("wallet lock not acquired")

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// WalletLocker implements usecase.WalletLocker across processes using
// SET NX PX with a random token.
type WalletLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewWalletLocker creates a new WalletLocker. The TTL bounds how long a
// crashed holder can block a wallet.
func NewWalletLocker(client *redis.Client, ttl time.Duration) *WalletLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &WalletLocker{
		client: client,
		prefix: "spendwise:lock:wallet:",
		ttl:    ttl,
	}
}

// Lock polls with exponential backoff until the lock is held or ctx is done.
func (l *WalletLocker) Lock(ctx context.Context, walletID string) (func(), error) {
	key := l.prefix + walletID
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 0

	err = backoff.Retry(func() error {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return ErrLockNotAcquired
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true

		// The caller's context may already be done; release regardless.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("wallet_id", walletID).Msg("failed to release wallet lock")
		}
	}, nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
