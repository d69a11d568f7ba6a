// Package decimals provides a memoized mint-decimals lookup. The cache is an
// explicitly-owned service passed to callers; nothing here is process-global.
package decimals

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// ResolveFunc fetches the decimal precision for one mint.
type ResolveFunc func(ctx context.Context, mint string) (uint8, error)

// Cache memoizes ResolveFunc results. Safe for concurrent use. Concurrent
// first lookups of the same mint may resolve twice; last writer wins, which
// is safe because the resolved value is immutable truth.
type Cache struct {
	mu      sync.Mutex
	m       map[string]uint8
	resolve ResolveFunc
}

func NewCache(resolve ResolveFunc) *Cache {
	return &Cache{
		m:       make(map[string]uint8),
		resolve: resolve,
	}
}

// GetOrResolve returns the cached decimals for mint, resolving and caching on
// a miss. Resolution runs outside the lock.
func (c *Cache) GetOrResolve(ctx context.Context, mint string) (uint8, error) {
	c.mu.Lock()
	if d, ok := c.m[mint]; ok {
		c.mu.Unlock()
		return d, nil
	}
	c.mu.Unlock()

	if c.resolve == nil {
		return 0, fmt.Errorf("no resolver configured")
	}

	d, err := c.resolve(ctx, mint)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.m[mint] = d
	c.mu.Unlock()
	return d, nil
}

// Len returns the number of cached mints.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// RPCResolver resolves decimals by fetching the mint account and decoding the
// SPL mint layout. Transient rate limits are retried with jittered backoff;
// all other errors bubble up.
func RPCResolver(client *rpc.Client) ResolveFunc {
	return func(ctx context.Context, mintBase58 string) (uint8, error) {
		mintKey, err := solana.PublicKeyFromBase58(mintBase58)
		if err != nil {
			return 0, fmt.Errorf("invalid mint: %w", err)
		}

		const maxAttempts = 5
		const base = 250 * time.Millisecond

		var out *rpc.GetAccountInfoResult
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			out, err = client.GetAccountInfo(ctx, mintKey)
			if err == nil {
				break
			}
			if !isRateLimited(err) {
				return 0, fmt.Errorf("get mint account %s: %w", mintBase58, err)
			}
			jitter := time.Duration(rand.Int63n(int64(150 * time.Millisecond)))
			time.Sleep(base*time.Duration(attempt) + jitter)
		}
		if err != nil {
			return 0, fmt.Errorf("get mint account %s: %w", mintBase58, err)
		}
		if out == nil || out.Value == nil {
			return 0, fmt.Errorf("mint account %s not found", mintBase58)
		}

		var mint token.Mint
		if err := mint.UnmarshalWithDecoder(bin.NewBinDecoder(out.Value.Data.GetBinary())); err != nil {
			return 0, fmt.Errorf("decode mint account %s: %w", mintBase58, err)
		}
		return mint.Decimals, nil
	}
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sub := range []string{"rate limit", "429", "too many requests", "server busy"} {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}
