package utils

import (
	"context"
	"sync"
	"time"
)

// blacklistEntry keeps expiration metadata for a revoked token ID.
type blacklistEntry struct {
	expiresAt time.Time
}

var (
	blacklist   = map[string]blacklistEntry{}
	blacklistMu sync.RWMutex
)

// BlacklistToken revokes a token by its jti until natural expiration to
// support logout semantics. Redis holds the revocation when reachable;
// otherwise the in-process map does, so a revoked token never keeps
// authenticating just because Redis is down.
func BlacklistToken(jti string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	// Prefer Redis: key with TTL until token expiration
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, "jwt:blacklist:"+jti, "1", ttl).Err(); err == nil {
			return
		}
	}
	blacklistMu.Lock()
	blacklist[jti] = blacklistEntry{expiresAt: expiresAt}
	blacklistMu.Unlock()
}

// IsTokenBlacklisted checks if a token ID was revoked before natural expiration.
func IsTokenBlacklisted(jti string) bool {
	// Prefer Redis
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := rc.Exists(ctx, "jwt:blacklist:"+jti).Result()
		if err == nil && n > 0 {
			return true
		}
		// Redis errors fall through to the in-process map rather than
		// silently clearing the revocation.
	}
	blacklistMu.RLock()
	entry, ok := blacklist[jti]
	blacklistMu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(entry.expiresAt) {
		blacklistMu.Lock()
		delete(blacklist, jti)
		blacklistMu.Unlock()
		return false
	}

	return true
}
