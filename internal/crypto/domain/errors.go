package domain

import (
	"github.com/reviewdesk/tokenvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// callers can classify failures with errors.Is without depending on this
// package's internals.
var (
	// ErrKeyNotSet indicates the required current encryption key is not configured.
	//
	// This is a hard stop: no encryption or decryption proceeds without the
	// current key. Fatal to the calling operation, never retried.
	ErrKeyNotSet = errors.Wrap(errors.ErrInvalidConfig, "current encryption key not set")

	// ErrInvalidKey indicates a configured key is not a 64-character hex string
	// decoding to exactly 32 bytes.
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidConfig, "invalid encryption key")

	// ErrInvalidEnvelope indicates a stored envelope is malformed: not valid
	// base64, or shorter than the minimum for either layout. Signals corrupted
	// or garbage input; local and non-retryable. Malformed envelopes are
	// rejected before any AEAD operation is attempted.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid token envelope")

	// ErrTokenDecryption indicates AEAD verification failed under every
	// available key. Retrying with the same inputs cannot succeed; the caller's
	// business logic decides what to do (typically discard the stored secret
	// and require the owner to re-authenticate).
	//
	// The specific cryptographic cause is not disclosed to prevent information
	// leakage.
	ErrTokenDecryption = errors.New("token decryption failed")
)
