package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RevokedTokenStore remembers tokens invalidated by logout until they would
// have expired anyway. Entries self-evict, so the store stays bounded by the
// token lifetime.
type RevokedTokenStore struct {
	cache *cache.Cache
}

func NewRevokedTokenStore() *RevokedTokenStore {
	// Default expiration of 24h matches the access token lifetime; expired
	// entries are purged every 10 minutes.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &RevokedTokenStore{
		cache: c,
	}
}

func (r *RevokedTokenStore) Revoke(token string, until time.Time) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	r.cache.Set(token, struct{}{}, ttl)
}

func (r *RevokedTokenStore) IsRevoked(token string) bool {
	_, found := r.cache.Get(token)
	return found
}
