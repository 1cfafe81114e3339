package domain

// Key material sizes.
const (
	// KeySize is the required key length in bytes (AES-256).
	KeySize = 32
	// KeyHexLength is the required length of a hex-encoded key.
	KeyHexLength = 64
)

// Envelope layout sizes. The tagged layout is
// version(1) || IV(12) || ciphertext(n) || tag(16); the legacy layout omits
// the leading version byte.
const (
	// IVSize is the AES-GCM nonce length in bytes.
	IVSize = 12
	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = 16
	// MinLegacyEnvelopeSize is the smallest valid untagged envelope (empty plaintext).
	MinLegacyEnvelopeSize = IVSize + TagSize
	// MinTaggedEnvelopeSize is the smallest valid tagged envelope (empty plaintext).
	MinTaggedEnvelopeSize = 1 + IVSize + TagSize
)

// Key-version tags carried in the envelope's leading byte. Legacy untagged
// envelopes are reported as KeyVersionPrevious by convention, since they
// predate versioning.
const (
	KeyVersionPrevious byte = 0
	KeyVersionCurrent  byte = 1
)
