// SPDX-License-Identifier: Apache-2.0

package service

import (
	"strings"
	"sync"
	"time"

	"github.com/opsboard/credvault/models"
)

// Field keys addressable by the reveal protocol. Custom secret fields use
// CustomFieldKey.
const (
	RevealPassword = "password"
	RevealTOTP     = "totp"

	customFieldPrefix = "custom:"
)

// CustomFieldKey builds the reveal key for a custom field by name.
func CustomFieldKey(name string) string {
	return customFieldPrefix + name
}

// copyFeedbackTTL is how long the copy confirmation badge stays visible.
// Purely a UI affordance: the OS clipboard is not cleared when it expires.
const copyFeedbackTTL = 2 * time.Second

type revealKey struct {
	id    string
	field string
}

// revealTracker records per-field visibility for one unlocked session. Like
// the credential cache it is rebuilt on unlock and dropped on lock, so no
// visibility flag can outlive the session that revealed the value.
type revealTracker struct {
	mu      sync.Mutex
	visible map[revealKey]bool
}

func newRevealTracker() *revealTracker {
	return &revealTracker{visible: make(map[revealKey]bool)}
}

func (r *revealTracker) isVisible(id, field string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible[revealKey{id: id, field: field}]
}

func (r *revealTracker) set(id, field string, v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v {
		r.visible[revealKey{id: id, field: field}] = true
		return
	}
	delete(r.visible, revealKey{id: id, field: field})
}

// clearCredential hides every field of one credential. Used when the record
// is updated or deleted, since visibility requires a cached value.
func (r *revealTracker) clearCredential(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.visible {
		if k.id == id {
			delete(r.visible, k)
		}
	}
}

// copyFeedback is the transient "copied!" badge state: the key of the last
// copied field and when the badge should disappear. It carries no security
// meaning.
type copyFeedback struct {
	fieldKey  string
	expiresAt time.Time
}

// fieldValueFrom resolves a reveal key against a decrypted record.
func fieldValueFrom(cred models.CredentialDecrypted, field string) (string, bool) {
	switch {
	case field == RevealPassword:
		return cred.Password, true
	case field == RevealTOTP:
		return cred.TOTPSecret, true
	case strings.HasPrefix(field, customFieldPrefix):
		name := strings.TrimPrefix(field, customFieldPrefix)
		for _, f := range cred.CustomFields {
			if f.Name == name {
				return f.Value, true
			}
		}
		return "", false
	default:
		return "", false
	}
}
