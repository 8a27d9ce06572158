// Package secrets encrypts sensitive settings at rest using fernet tokens.
// The key comes from configuration (SECRET_KEY); values are stored as opaque
// token strings in the system_setting table.
package secrets

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecryptFailed indicates that a stored token could not be verified with
// the configured key, usually because the key was rotated.
var ErrDecryptFailed = errors.New("failed to decrypt stored value")

// Encrypt encrypts plaintext with the given base64-encoded fernet key.
func Encrypt(key, plaintext string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("invalid secret key: %w", err)
	}

	token, err := fernet.EncryptAndSign([]byte(plaintext), k)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}

	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token with the given key.
// Tokens do not expire; rotation is handled by re-storing the setting.
func Decrypt(key, token string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("invalid secret key: %w", err)
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{k})
	if plaintext == nil {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}
