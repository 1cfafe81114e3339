package service

import (
	"fmt"

	"github.com/reviewdesk/tokenvault/internal/crypto/domain"
)

// tokenCipher implements TokenCipher on top of a two-key keyring.
//
// Decryption policy, per attempt:
//
//	START -> try current -> SUCCESS
//	                     -> FAIL -> try previous (if configured) -> SUCCESS
//	                                                             -> FAIL -> ERROR
//
// No retries happen beyond the two key attempts; a failed AEAD verification
// cannot succeed with the same inputs. The one extra step is for legacy
// blobs that the format sniffer mistook for tagged: those are re-parsed as
// untagged and given the same two attempts before giving up.
type tokenCipher struct {
	keyring *domain.Keyring
}

// NewTokenCipher creates a TokenCipher backed by the given keyring.
func NewTokenCipher(keyring *domain.Keyring) (TokenCipher, error) {
	if keyring == nil || keyring.Current() == nil {
		return nil, domain.ErrKeyNotSet
	}
	return &tokenCipher{keyring: keyring}, nil
}

// Encrypt seals plaintext under the current key into a tagged envelope.
func (t *tokenCipher) Encrypt(plaintext string) (string, error) {
	aead, err := NewAESGCM(t.keyring.Current())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidKey, err)
	}

	ciphertext, nonce, err := aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}

	return domain.NewEnvelope(domain.KeyVersionCurrent, nonce, ciphertext).Encode(), nil
}

// DecryptWithVersion recovers plaintext from a stored envelope.
//
// The current key is tried first, then the previous key when one is
// configured. For tagged envelopes the embedded version byte is
// authoritative when the current key validates; a previous-key success is
// always reported as KeyVersionPrevious. Untagged legacy envelopes report
// KeyVersionPrevious regardless of which key validated, by convention that
// legacy blobs predate versioning.
func (t *tokenCipher) DecryptWithVersion(envelope string) (domain.DecryptionResult, error) {
	env, err := domain.ParseEnvelope(envelope)
	if err != nil {
		return domain.DecryptionResult{}, err
	}

	if plaintext, ok := t.open(env, t.keyring.Current()); ok {
		return domain.DecryptionResult{
			Plaintext:  plaintext,
			KeyVersion: envelopeVersion(env),
		}, nil
	}

	if previous, ok := t.keyring.Previous(); ok {
		if plaintext, ok := t.open(env, previous); ok {
			return domain.DecryptionResult{
				Plaintext:  plaintext,
				KeyVersion: domain.KeyVersionPrevious,
			}, nil
		}
	}

	// A legacy blob whose first ciphertext byte collides with a version tag
	// parses as tagged and fails both attempts above; re-parse it as the
	// untagged layout before giving up.
	if legacy, ok := env.AsLegacy(); ok {
		if plaintext, ok := t.open(legacy, t.keyring.Current()); ok {
			return domain.DecryptionResult{
				Plaintext:  plaintext,
				KeyVersion: domain.KeyVersionPrevious,
			}, nil
		}
		if previous, ok := t.keyring.Previous(); ok {
			if plaintext, ok := t.open(legacy, previous); ok {
				return domain.DecryptionResult{
					Plaintext:  plaintext,
					KeyVersion: domain.KeyVersionPrevious,
				}, nil
			}
		}
	}

	return domain.DecryptionResult{}, fmt.Errorf(
		"%w: envelope did not validate under any configured key",
		domain.ErrTokenDecryption,
	)
}

// Decrypt recovers plaintext from a stored envelope, discarding the version.
func (t *tokenCipher) Decrypt(envelope string) (string, error) {
	result, err := t.DecryptWithVersion(envelope)
	if err != nil {
		return "", err
	}
	return result.Plaintext, nil
}

// open attempts one AEAD verification of env under key.
func (t *tokenCipher) open(env domain.Envelope, key domain.Key) (string, bool) {
	aead, err := NewAESGCM(key)
	if err != nil {
		return "", false
	}

	plaintext, err := aead.Decrypt(env.Ciphertext, env.IV, nil)
	if err != nil {
		return "", false
	}

	return string(plaintext), true
}

// envelopeVersion maps a successfully current-key-decrypted envelope to the
// key version reported to callers. Untagged blobs are always
// KeyVersionPrevious so the migration runner rewrites them into the tagged
// layout.
func envelopeVersion(env domain.Envelope) byte {
	if !env.Tagged {
		return domain.KeyVersionPrevious
	}
	return env.Version
}
