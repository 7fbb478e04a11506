package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/kbukum/storefront/validation"
)

// Algorithm names an AEAD cipher.
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256-GCM.
	AlgorithmAESGCM Algorithm = "aes-256-gcm"
	// AlgorithmChaCha20 is ChaCha20-Poly1305, faster on CPUs without AES-NI.
	AlgorithmChaCha20 Algorithm = "chacha20-poly1305"
)

// ErrOpen is returned when a box was tampered with, sealed under another
// key or bound to other associated data.
var ErrOpen = errors.New("encryption: message authentication failed")

// Config selects the key and cipher.
type Config struct {
	// Key is a passphrase; it is hashed to a 256-bit key.
	Key       string    `mapstructure:"key"`
	Algorithm Algorithm `mapstructure:"algorithm"`
}

// Enabled reports whether a key is configured.
func (c *Config) Enabled() bool { return c.Key != "" }

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmAESGCM
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var r validation.Rules
	return r.OneOf("algorithm", string(c.Algorithm), string(AlgorithmAESGCM), string(AlgorithmChaCha20)).
		MinLength("key", c.Key, 16).
		Err()
}

// Sealer encrypts and authenticates byte slices.
type Sealer struct {
	aead cipher.AEAD
	alg  Algorithm
}

// New builds a Sealer from cfg.
func New(cfg Config) (*Sealer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Key == "" {
		return nil, errors.New("encryption: key is required")
	}
	key := sha256.Sum256([]byte(cfg.Key))

	var (
		aead cipher.AEAD
		err  error
	)
	switch cfg.Algorithm {
	case AlgorithmChaCha20:
		aead, err = chacha20poly1305.New(key[:])
	default:
		var block cipher.Block
		if block, err = aes.NewCipher(key[:]); err == nil {
			aead, err = cipher.NewGCM(block)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encryption: create %s: %w", cfg.Algorithm, err)
	}
	return &Sealer{aead: aead, alg: cfg.Algorithm}, nil
}

// Algorithm returns the cipher in use.
func (s *Sealer) Algorithm() Algorithm { return s.alg }

// Seal returns nonce||ciphertext for plaintext bound to ad.
func (s *Sealer) Seal(plaintext, ad []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("encryption: nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, ad), nil
}

// Open reverses Seal.
func (s *Sealer) Open(box, ad []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(box) < n+s.aead.Overhead() {
		return nil, ErrOpen
	}
	plaintext, err := s.aead.Open(nil, box[:n], box[n:], ad)
	if err != nil {
		return nil, ErrOpen
	}
	return plaintext, nil
}
