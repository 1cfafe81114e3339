package commands

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/reviewdesk/tokenvault/internal/crypto/domain"
)

// RunGenerateKey generates a cryptographically secure 32-byte encryption key
// and prints it hex-encoded, ready for the CURRENT_KEY environment variable.
// Key material is zeroed from memory after encoding.
func RunGenerateKey(cmdIO IOTuple, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	encoded := hex.EncodeToString(key)
	cryptoDomain.Zero(key)

	if format == "json" {
		jsonBytes, err := json.MarshalIndent(map[string]string{"key": encoded}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmdIO.Writer, string(jsonBytes))
		return nil
	}

	fmt.Fprintln(cmdIO.Writer, "# Encryption key configuration")
	fmt.Fprintln(cmdIO.Writer, "# Copy this environment variable to your .env file or secrets manager")
	fmt.Fprintln(cmdIO.Writer)
	fmt.Fprintf(cmdIO.Writer, "CURRENT_KEY=\"%s\"\n", encoded)
	fmt.Fprintln(cmdIO.Writer)
	fmt.Fprintln(cmdIO.Writer, "# When rotating keys, move the old CURRENT_KEY to PREVIOUS_KEY:")
	fmt.Fprintln(cmdIO.Writer, "# PREVIOUS_KEY=\"<old current key>\"")

	return nil
}
