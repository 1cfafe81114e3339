package domain

// DecryptionResult is the ephemeral outcome of a successful decryption.
// It is returned to the caller and never persisted.
//
// KeyVersion tells the migration runner whether the envelope needs
// re-encryption: KeyVersionCurrent means the row is already sealed under the
// current key, KeyVersionPrevious means it was recovered with the previous
// key or is a legacy untagged blob.
type DecryptionResult struct {
	Plaintext  string
	KeyVersion byte
}
