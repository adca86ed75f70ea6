// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"sync"

	"github.com/opsboard/credvault/internal/adapter"
	"github.com/opsboard/credvault/models"
)

// credentialCache holds at most one decrypted record per credential id for a
// single unlocked session. A fresh cache is constructed on every unlock and
// invalidated on lock, so "purge on lock" is enforced by object lifetime.
//
// Invalidation also acts as the post-lock race guard: a fetch that was in
// flight when the vault locked finds the cache invalidated when its response
// arrives and discards the result instead of storing it.
type credentialCache struct {
	adapter adapter.VaultAdapter

	mu          sync.Mutex
	invalidated bool
	entries     map[string]models.CredentialDecrypted
	inflight    map[string]*inflightFetch
}

// inflightFetch de-duplicates concurrent fetches for the same id: the first
// caller performs the round trip, later callers wait on done and share the
// outcome.
type inflightFetch struct {
	done chan struct{}
	cred models.CredentialDecrypted
	err  error
}

func newCredentialCache(a adapter.VaultAdapter) *credentialCache {
	return &credentialCache{
		adapter:  a,
		entries:  make(map[string]models.CredentialDecrypted),
		inflight: make(map[string]*inflightFetch),
	}
}

// Get returns the cached decrypted record for id, if present. It never
// performs a network call.
func (c *credentialCache) Get(id string) (models.CredentialDecrypted, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cred, ok := c.entries[id]
	return cred, ok
}

// FetchAndCache fetches the full decrypted record for id and stores it,
// overwriting any stale entry. Concurrent calls for the same id share one
// round trip. If the cache was invalidated while the request was in flight,
// the response is discarded and [ErrVaultLocked] is returned.
func (c *credentialCache) FetchAndCache(ctx context.Context, id string) (models.CredentialDecrypted, error) {
	c.mu.Lock()
	if c.invalidated {
		c.mu.Unlock()
		return models.CredentialDecrypted{}, ErrVaultLocked
	}
	if f, ok := c.inflight[id]; ok {
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return models.CredentialDecrypted{}, ctx.Err()
		case <-f.done:
			return f.cred, f.err
		}
	}

	f := &inflightFetch{done: make(chan struct{})}
	c.inflight[id] = f
	c.mu.Unlock()

	cred, err := c.adapter.GetCredential(ctx, id)
	err = mapVaultAdapterError(err)

	c.mu.Lock()
	delete(c.inflight, id)
	if err == nil && c.invalidated {
		// The vault locked while the fetch was in flight. Caching the late
		// response would leak decrypted data outside the unlocked state.
		cred, err = models.CredentialDecrypted{}, ErrVaultLocked
	}
	if err == nil {
		c.entries[id] = cred
	}
	f.cred, f.err = cred, err
	close(f.done)
	c.mu.Unlock()

	return cred, err
}

// CopyField resolves the decrypted value of a built-in field. The cached
// full record is used when present; otherwise the dedicated single-field
// endpoint is called so that copying does not materialise the whole record.
// The narrow value is intentionally not cached.
func (c *credentialCache) CopyField(ctx context.Context, id string, field models.CredentialField) (string, error) {
	if !field.Valid() {
		return "", ErrUnknownField
	}

	c.mu.Lock()
	if c.invalidated {
		c.mu.Unlock()
		return "", ErrVaultLocked
	}
	if cred, ok := c.entries[id]; ok {
		c.mu.Unlock()
		switch field {
		case models.CredentialUsername:
			return cred.Username, nil
		default:
			return cred.Password, nil
		}
	}
	c.mu.Unlock()

	value, err := c.adapter.GetCredentialField(ctx, id, field)
	if err != nil {
		return "", mapVaultAdapterError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalidated {
		return "", ErrVaultLocked
	}
	return value, nil
}

// Evict drops the entry for id, if any. Used after an update or delete so a
// stale decrypted payload is never rendered.
func (c *credentialCache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// PurgeAll removes every entry and marks the cache invalid. Called exactly
// once, by the lock transition. Responses of still-running fetches are
// discarded when they arrive.
func (c *credentialCache) PurgeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidated = true
	clear(c.entries)
}

// Len reports the number of cached decrypted records.
func (c *credentialCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
