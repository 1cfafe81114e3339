package domain

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/reviewdesk/tokenvault/internal/errors"
)

func TestEnvelopeEncodeParse(t *testing.T) {
	iv := bytes.Repeat([]byte{0xAB}, IVSize)
	ciphertext := append([]byte("ciphertext"), bytes.Repeat([]byte{0xCD}, TagSize)...)

	env := NewEnvelope(KeyVersionCurrent, iv, ciphertext)
	encoded := env.Encode()

	parsed, err := ParseEnvelope(encoded)
	require.NoError(t, err)

	assert.True(t, parsed.Tagged)
	assert.Equal(t, KeyVersionCurrent, parsed.Version)
	assert.Equal(t, iv, parsed.IV)
	assert.Equal(t, ciphertext, parsed.Ciphertext)
}

func TestParseEnvelope_LegacyLayout(t *testing.T) {
	// First byte is not a version tag, so the blob is untagged.
	raw := make([]byte, MinLegacyEnvelopeSize)
	raw[0] = 0x5A
	for i := 1; i < len(raw); i++ {
		raw[i] = byte(i)
	}

	parsed, err := ParseEnvelope(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)

	assert.False(t, parsed.Tagged)
	assert.Equal(t, KeyVersionPrevious, parsed.Version)
	assert.Equal(t, raw[:IVSize], parsed.IV)
	assert.Equal(t, raw[IVSize:], parsed.Ciphertext)
}

func TestParseEnvelope_TaggedLayout(t *testing.T) {
	for _, version := range []byte{KeyVersionPrevious, KeyVersionCurrent} {
		raw := make([]byte, MinTaggedEnvelopeSize)
		raw[0] = version
		for i := 1; i < len(raw); i++ {
			raw[i] = byte(i + 2)
		}

		parsed, err := ParseEnvelope(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)

		assert.True(t, parsed.Tagged)
		assert.Equal(t, version, parsed.Version)
		assert.Equal(t, raw[1:1+IVSize], parsed.IV)
		assert.Equal(t, raw[1+IVSize:], parsed.Ciphertext)
	}
}

func TestParseEnvelope_MinimumLegacyLengthWithTagByte(t *testing.T) {
	// 28 bytes starting with 0x01 is too short for the tagged layout and
	// must fall back to the untagged interpretation.
	raw := make([]byte, MinLegacyEnvelopeSize)
	raw[0] = 0x01

	parsed, err := ParseEnvelope(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)

	assert.False(t, parsed.Tagged)
	assert.Equal(t, raw[:IVSize], parsed.IV)
}

func TestParseEnvelope_InvalidBase64(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong alphabet", content: "not base64 at all!"},
		{name: "non-multiple-of-4 length", content: "QUJDR"},
		{name: "broken padding", content: "QU=JD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelope(tt.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestParseEnvelope_BelowMinimumLength(t *testing.T) {
	raw := make([]byte, MinLegacyEnvelopeSize-1)

	_, err := ParseEnvelope(base64.StdEncoding.EncodeToString(raw))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEnvelopeAsLegacy(t *testing.T) {
	t.Run("tagged envelope reinterprets", func(t *testing.T) {
		raw := make([]byte, MinTaggedEnvelopeSize+4)
		raw[0] = KeyVersionCurrent
		for i := 1; i < len(raw); i++ {
			raw[i] = byte(i * 3)
		}

		parsed, err := ParseEnvelope(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		require.True(t, parsed.Tagged)

		legacy, ok := parsed.AsLegacy()
		require.True(t, ok)
		assert.False(t, legacy.Tagged)
		assert.Equal(t, KeyVersionPrevious, legacy.Version)
		assert.Equal(t, raw[:IVSize], legacy.IV)
		assert.Equal(t, raw[IVSize:], legacy.Ciphertext)
	})

	t.Run("untagged envelope does not reinterpret", func(t *testing.T) {
		raw := make([]byte, MinLegacyEnvelopeSize)
		raw[0] = 0x7F

		parsed, err := ParseEnvelope(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		require.False(t, parsed.Tagged)

		_, ok := parsed.AsLegacy()
		assert.False(t, ok)
	})
}
