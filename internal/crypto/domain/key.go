package domain

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	validation "github.com/jellydator/validation"

	vrules "github.com/reviewdesk/tokenvault/internal/validation"
)

// Key is raw 32-byte symmetric key material.
//
// Keys are supplied as 64-character hex strings, held in memory only for the
// lifetime of the keyring, and never logged or persisted.
type Key []byte

// ParseKey decodes and validates a hex-encoded 32-byte key.
// Returns ErrInvalidKey if the input is not exactly 64 hex characters.
func ParseKey(hexKey string) (Key, error) {
	err := validation.Validate(
		hexKey,
		validation.Required,
		validation.Length(KeyHexLength, KeyHexLength),
		vrules.Hex,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	return Key(key), nil
}

// Keyring holds the current encryption key and, during a rotation window,
// the previous key kept only as a decryption fallback.
//
// A keyring is constructed once at startup and injected into the engines and
// the migration runner. It holds no other mutable state and is safe for
// concurrent use.
type Keyring struct {
	current  Key
	previous Key
}

// NewKeyring builds a keyring from already-validated key material.
// previous may be nil when no rotation is in progress.
func NewKeyring(current, previous Key) *Keyring {
	return &Keyring{current: current, previous: previous}
}

// LoadKeyring validates and assembles the keyring from hex-encoded
// configuration values.
//
// The current key is required: missing or malformed input fails with a
// configuration error and nothing proceeds without it. The previous key is
// optional: a malformed value is logged as a warning and treated as absent,
// since absence is the normal post-rotation state.
func LoadKeyring(currentHex, previousHex string, logger *slog.Logger) (*Keyring, error) {
	if currentHex == "" {
		return nil, ErrKeyNotSet
	}

	current, err := ParseKey(currentHex)
	if err != nil {
		return nil, fmt.Errorf("current key: %w", err)
	}

	var previous Key
	if previousHex != "" {
		previous, err = ParseKey(previousHex)
		if err != nil {
			logger.Warn("previous encryption key is malformed, treating as absent",
				slog.Any("error", err),
			)
			previous = nil
		}
	}

	return NewKeyring(current, previous), nil
}

// Current returns the key used for all new encryption.
func (k *Keyring) Current() Key {
	return k.current
}

// Previous returns the rotation fallback key and whether one is configured.
func (k *Keyring) Previous() (Key, bool) {
	if k.previous == nil {
		return nil, false
	}
	return k.previous, true
}

// HasPrevious reports whether a rotation fallback key is configured.
func (k *Keyring) HasPrevious() bool {
	return k.previous != nil
}

// Close zeroes all key material. The keyring must not be used afterwards.
func (k *Keyring) Close() {
	Zero(k.current)
	Zero(k.previous)
	k.current = nil
	k.previous = nil
}
