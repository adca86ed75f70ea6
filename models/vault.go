// SPDX-License-Identifier: Apache-2.0

package models

// VaultStatus describes the lifecycle state of a per-tenant credential vault
// as seen by the client.
//
// The state machine is strict:
//
//	Unprovisioned --setup(ok)--> Unlocked
//	Locked --unlock(ok)--> Unlocked
//	Locked --unlock(fail)--> Locked
//	Unlocked --lock()--> Locked
//
// While the status is anything other than [VaultUnlocked], no decrypted
// credential data may exist anywhere in client memory.
type VaultStatus string

const (
	// VaultUnprovisioned means no vault exists for the tenant yet.
	// The only valid transition out is a successful setup.
	VaultUnprovisioned VaultStatus = "UNPROVISIONED"

	// VaultLocked means the vault exists but the data-encryption key is not
	// available. Masked listings and decrypted values are both unreachable.
	VaultLocked VaultStatus = "LOCKED"

	// VaultUnlocked means the vault is open for the current session and
	// decrypted values may be fetched on explicit user action.
	VaultUnlocked VaultStatus = "UNLOCKED"
)

// VaultSession is the client-side view of the vault lifecycle.
type VaultSession struct {
	// Status is the current lifecycle state of the vault.
	Status VaultStatus `json:"status"`
}

// VaultStatusResponse is the wire representation of the vault state returned
// by the status endpoint. The two booleans are collapsed into a [VaultStatus]
// by [VaultStatusResponse.Session].
type VaultStatusResponse struct {
	// IsSetup reports whether the vault has been provisioned with a master
	// password.
	IsSetup bool `json:"is_setup"`

	// IsUnlocked reports whether the data-encryption key is currently held
	// in the server-side session.
	IsUnlocked bool `json:"is_unlocked"`
}

// Session collapses the wire booleans into the client state machine value.
func (r VaultStatusResponse) Session() VaultSession {
	switch {
	case !r.IsSetup:
		return VaultSession{Status: VaultUnprovisioned}
	case r.IsUnlocked:
		return VaultSession{Status: VaultUnlocked}
	default:
		return VaultSession{Status: VaultLocked}
	}
}
