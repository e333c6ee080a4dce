// Package baseline remembers the STX address each network produced on its first
// run, so later runs can be compared with it.
package baseline

import (
	"fmt"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/network"
)

// KeyPrefix prefixes every baseline key in Redis.
const KeyPrefix = "stx-e2e:address:"

// Store keeps baselines in Redis.
type Store struct {
	redis *v1.RedisClient
}

// New wraps a connected client.
func New(client *v1.RedisClient) *Store {
	return &Store{redis: client}
}

// Key returns the Redis key holding n's baseline.
func Key(n network.Network) string {
	return KeyPrefix + n.String()
}

// Check compares address with the recorded baseline for n. The first
// observation becomes the baseline; a different address later fails the stage.
func (s *Store) Check(n network.Network, address string) {
	key := Key(n)
	prev, ok := s.redis.Lookup(key)
	if !ok {
		if v1.IsDryRun() {
			return
		}
		s.redis.Set(key, address, 0)
		v1.Log(v1.LogTypeBaseline, fmt.Sprintf("Recorded %s baseline", n), address)
		return
	}
	v1.ExpectEqual(fmt.Sprintf("%s address baseline", n), prev, address)
}

// Forget drops the baseline for n.
func (s *Store) Forget(n network.Network) {
	s.redis.Del(Key(n))
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	return s.redis.Close()
}
