package encryption

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// TokenCipher seals short secrets (OAuth access tokens) with XSalsa20-Poly1305.
// Output is base64(nonce || box).
type TokenCipher struct {
	key [32]byte
}

func NewTokenCipher(hexKey string) (*TokenCipher, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(raw))
	}

	cipher := &TokenCipher{}
	copy(cipher.key[:], raw)

	return cipher, nil
}

func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *TokenCipher) Decrypt(ciphertext string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrInvalidCiphertext
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	opened, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrInvalidCiphertext
	}

	return string(opened), nil
}
