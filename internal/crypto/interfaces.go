package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns the key hierarchy of a tenant vault. It knows nothing
// about the network, the database, or users; its only job is deriving and
// protecting keys.
//
// Provisioning:
//
//	salt, DEK = GenerateSalt() + GenerateDEK()
//	KEK       = DeriveKEK(masterPassword, salt)
//	wrapped   = WrapDEK(DEK, KEK)
//	verifier  = Verifier(KEK)
//
// The salt, wrapped DEK, and verifier are stored; the KEK and plaintext DEK
// are never written anywhere. Unlocking re-derives the KEK from the entered
// master password, checks it against the verifier, and unwraps the DEK into
// the server-side vault session.
type KeyChainService interface {
	// GenerateSalt returns a fresh random KDF salt (16 bytes). The salt is
	// not a secret and is stored alongside the vault record.
	GenerateSalt() ([]byte, error)

	// GenerateDEK returns a fresh random data-encryption key
	// (32 bytes / 256 bits). The DEK encrypts every credential payload of
	// the vault and exists in plaintext only inside an unlocked session.
	GenerateDEK() ([]byte, error)

	// DeriveKEK derives the key-encryption key from the master password and
	// salt via Argon2id.
	DeriveKEK(masterPassword string, salt []byte) []byte

	// WrapDEK encrypts the DEK with the KEK using AES-256-GCM. The returned
	// blob (nonce ‖ ciphertext) is safe to store: without the KEK it is
	// indistinguishable from random noise.
	WrapDEK(dek, kek []byte) ([]byte, error)

	// UnwrapDEK reverses WrapDEK. An authentication failure almost always
	// means a wrong master password produced a wrong KEK.
	UnwrapDEK(wrapped, kek []byte) ([]byte, error)

	// Verifier computes the stored master-password check value from the KEK.
	// It is a one-way digest: the KEK cannot be recovered from it.
	Verifier(kek []byte) []byte

	// EncryptPayload serialises the given value to JSON and encrypts it with
	// the DEK. Returns a base64 blob (nonce ‖ ciphertext) for storage.
	EncryptPayload(data any, dek []byte) (string, error)

	// DecryptPayload decrypts a base64 blob produced by EncryptPayload and
	// unmarshals the plaintext into target (a non-nil pointer, same contract
	// as json.Unmarshal).
	DecryptPayload(encryptedB64 string, dek []byte, target any) error
}
