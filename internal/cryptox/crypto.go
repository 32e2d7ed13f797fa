// Package cryptox implements field-level encryption for sensitive user data.
//
// The wire format of an encrypted field is "<hex-iv>:<hex-ciphertext>",
// produced by AES-CBC with PKCS#7 padding under a shared hex-encoded key.
// The client only decrypts; EncryptField exists for the server side of the
// pair (the stub backend and tests).
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/common"
)

var (
	ErrNoKey            = errors.New("field cipher: no key configured")
	ErrInvalidKey       = errors.New("field cipher: invalid key")
	ErrMalformedField   = errors.New("field cipher: malformed field")
	ErrInvalidPadding   = errors.New("field cipher: invalid padding")
	ErrInvalidPlaintext = errors.New("field cipher: plaintext is not valid UTF-8")
)

const fieldSeparator = ":"

// FieldCipher decrypts single text fields. The zero value and a nil pointer
// are valid and decrypt nothing.
type FieldCipher struct {
	key []byte
}

// NewFieldCipher builds a cipher from a hex key. An empty or unusable key
// yields a passthrough cipher rather than an error, so a missing secret
// never prevents the client from starting.
func NewFieldCipher(hexKey string) *FieldCipher {
	key, err := ParseKey(hexKey)
	if err != nil {
		return &FieldCipher{}
	}
	return &FieldCipher{key: key}
}

// ParseKey decodes a hex AES key (16, 24 or 32 bytes).
func ParseKey(hexKey string) ([]byte, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, ErrNoKey
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKey, len(key))
	}
}

// Enabled reports whether a usable key is loaded.
func (c *FieldCipher) Enabled() bool {
	return c != nil && len(c.key) > 0
}

// DecryptField returns the plaintext of an "<hex-iv>:<hex-ciphertext>"
// value. Anything that cannot be decrypted is returned unchanged: the
// client cannot tell plaintext from corrupt ciphertext.
func (c *FieldCipher) DecryptField(value string) string {
	if !c.Enabled() {
		return value
	}
	plain, err := c.Decrypt(value)
	if err != nil {
		return value
	}
	return plain
}

// Decrypt is the strict form of DecryptField and reports why a value
// could not be decrypted.
func (c *FieldCipher) Decrypt(value string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoKey
	}

	parts := strings.Split(value, fieldSeparator)
	if len(parts) != 2 {
		return "", ErrMalformedField
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrMalformedField
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrMalformedField
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrInvalidPlaintext
	}
	return string(plaintext), nil
}

// DecryptUserFields returns a shallow copy of u with Email decrypted.
func (c *FieldCipher) DecryptUserFields(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	out := *u
	if out.Email != "" {
		out.Email = c.DecryptField(out.Email)
	}
	return &out
}

// EncryptField encrypts plaintext under a fresh random IV.
func (c *FieldCipher) EncryptField(plaintext string) (string, error) {
	return c.EncryptFieldWithIV(common.GenerateRandByteArray(aes.BlockSize), plaintext)
}

// EncryptFieldWithIV encrypts plaintext under the given IV. Reusing an IV
// leaks equality of plaintexts; it is meant for deterministic tests.
func (c *FieldCipher) EncryptFieldWithIV(iv []byte, plaintext string) (string, error) {
	if !c.Enabled() {
		return "", ErrNoKey
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("field cipher: iv must be %d bytes", aes.BlockSize)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + fieldSeparator + hex.EncodeToString(ciphertext), nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
