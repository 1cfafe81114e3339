// Package service implements the cryptographic engines for token envelopes.
package service

import (
	"github.com/reviewdesk/tokenvault/internal/crypto/domain"
)

// AEAD defines authenticated encryption operations.
//
// Implementations must be stateless and safe for concurrent use; every
// encryption generates its own fresh nonce.
type AEAD interface {
	// Encrypt encrypts plaintext with optional additional authenticated data.
	// Returns the ciphertext (with authentication tag appended) and the
	// randomly generated nonce used for this operation.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD, verifying
	// the authentication tag before returning any plaintext.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// TokenCipher encrypts and decrypts tenant refresh tokens as versioned
// envelopes, handling the current/previous key fallback during rotation.
//
// All operations are synchronous, CPU-bound, and hold no shared mutable
// state, so a single instance is safe for concurrent request handlers.
type TokenCipher interface {
	// Encrypt seals plaintext under the current key and returns the base64
	// tagged envelope. The decoded envelope length is always
	// 29 + len(plaintext) bytes.
	Encrypt(plaintext string) (string, error)

	// DecryptWithVersion recovers plaintext from a stored envelope, trying
	// the current key first and the previous key as a rotation fallback, and
	// reports which key generation the envelope belongs to.
	DecryptWithVersion(envelope string) (domain.DecryptionResult, error)

	// Decrypt is a convenience wrapper around DecryptWithVersion that
	// discards the key version.
	Decrypt(envelope string) (string, error)
}
