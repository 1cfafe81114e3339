package domain

import (
	"encoding/base64"
	"fmt"
)

// Envelope is the at-rest representation of one encrypted secret.
//
// Two physical layouts exist:
//
//	tagged (new):     version(1) || IV(12) || ciphertext(n) || tag(16)
//	untagged (legacy):              IV(12) || ciphertext(n) || tag(16)
//
// Envelopes are transported as standard base64 strings. New writes always
// produce the tagged layout; untagged blobs predate versioning and are
// implicitly KeyVersionPrevious.
type Envelope struct {
	// Version is the key-version tag carried by the leading byte.
	Version byte
	// Tagged reports whether the decoded blob carried an explicit version byte.
	Tagged bool
	// IV is the 12-byte random nonce used for this encryption.
	IV []byte
	// Ciphertext is the AEAD output with the 16-byte authentication tag
	// appended, exactly as the cipher emits it.
	Ciphertext []byte
}

// NewEnvelope assembles a tagged envelope around AEAD output.
func NewEnvelope(version byte, iv, ciphertext []byte) Envelope {
	return Envelope{
		Version:    version,
		Tagged:     true,
		IV:         iv,
		Ciphertext: ciphertext,
	}
}

// Encode serializes the envelope to its base64 transport form.
// The output always uses the tagged layout.
func (e Envelope) Encode() string {
	raw := make([]byte, 0, 1+len(e.IV)+len(e.Ciphertext))
	raw = append(raw, e.Version)
	raw = append(raw, e.IV...)
	raw = append(raw, e.Ciphertext...)
	return base64.StdEncoding.EncodeToString(raw)
}

// ParseEnvelope decodes a stored base64 blob into its logical fields.
//
// Inputs that are not valid base64 (wrong alphabet, wrong padding,
// non-multiple-of-4 length) or that decode below the minimum envelope size
// are rejected with ErrInvalidEnvelope before any AEAD operation runs.
//
// Format detection: a blob of at least MinTaggedEnvelopeSize whose first
// byte is a known version tag is treated as tagged; anything else is the
// untagged legacy layout. A legacy blob whose first ciphertext byte happens
// to be 0x00 or 0x01 collides with this heuristic; AsLegacy exists so
// callers can recover that case after a failed decrypt.
func ParseEnvelope(content string) (Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	if len(raw) < MinLegacyEnvelopeSize {
		return Envelope{}, fmt.Errorf(
			"%w: decoded length %d is below the minimum of %d bytes",
			ErrInvalidEnvelope,
			len(raw),
			MinLegacyEnvelopeSize,
		)
	}

	if len(raw) >= MinTaggedEnvelopeSize &&
		(raw[0] == KeyVersionPrevious || raw[0] == KeyVersionCurrent) {
		return Envelope{
			Version:    raw[0],
			Tagged:     true,
			IV:         raw[1 : 1+IVSize],
			Ciphertext: raw[1+IVSize:],
		}, nil
	}

	return Envelope{
		Version:    KeyVersionPrevious,
		Tagged:     false,
		IV:         raw[:IVSize],
		Ciphertext: raw[IVSize:],
	}, nil
}

// AsLegacy reinterprets a tagged-sniffed envelope as the untagged layout,
// folding the version byte back into the IV. Returns false when the envelope
// was not parsed as tagged.
func (e Envelope) AsLegacy() (Envelope, bool) {
	if !e.Tagged {
		return Envelope{}, false
	}

	raw := make([]byte, 0, 1+len(e.IV)+len(e.Ciphertext))
	raw = append(raw, e.Version)
	raw = append(raw, e.IV...)
	raw = append(raw, e.Ciphertext...)

	return Envelope{
		Version:    KeyVersionPrevious,
		Tagged:     false,
		IV:         raw[:IVSize],
		Ciphertext: raw[IVSize:],
	}, true
}
