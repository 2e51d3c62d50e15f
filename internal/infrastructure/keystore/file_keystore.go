// Package keystore resolves and owns the process RSA keypair. The pair is
// resolved once at startup, from inline configuration, PEM files on disk,
// or fresh generation, and is immutable afterwards. The private key never
// leaves this package; callers decrypt through the store.
package keystore

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"payment_intake_service/internal/domain/keys"
	"payment_intake_service/internal/pkg/config"
	"payment_intake_service/internal/pkg/logger"
)

const generatedKeySize = 2048

type fileKeyStore struct {
	settings     config.KeySettings
	processor    keys.RSAProcessor
	logger       logger.Logger
	privateKey   *rsa.PrivateKey
	publicKeyPEM string
}

// NewFileKeyStore creates a KeyStore backed by the configured key sources.
// Initialize must be called before any other method.
func NewFileKeyStore(settings config.KeySettings, processor keys.RSAProcessor, logger logger.Logger) (keys.KeyStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid key settings: %w", err)
	}
	return &fileKeyStore{
		settings:  settings,
		processor: processor,
		logger:    logger,
	}, nil
}

// Initialize resolves the keypair. Resolution order, first match wins:
// inline configured material, PEM files on disk, generation with
// persistence. A malformed inline pair falls through with a warning; a
// persistence failure during generation is fatal.
func (s *fileKeyStore) Initialize() error {
	if s.privateKey != nil {
		return nil
	}

	if s.settings.PublicKey != "" && s.settings.PrivateKey != "" {
		if err := s.loadInline(); err == nil {
			s.logger.Info("Loaded RSA keypair from configured key material")
			return nil
		} else {
			s.logger.Warn("Configured key material unusable, falling back: ", err)
		}
	}

	if fileExists(s.settings.PublicKeyPath) && fileExists(s.settings.PrivateKeyPath) {
		if err := s.loadFromFiles(); err != nil {
			return fmt.Errorf("failed to load keypair from %s: %w", s.settings.PrivateKeyPath, err)
		}
		s.logger.Info("Loaded RSA keypair from ", s.settings.PublicKeyPath)
		return nil
	}

	if err := s.generateAndPersist(); err != nil {
		return fmt.Errorf("failed to generate keypair: %w", err)
	}
	s.logger.Info("Generated new RSA keypair and persisted it to ", s.settings.PublicKeyPath)
	return nil
}

// PublicKeyPEM returns the cached public key as a PEM string.
func (s *fileKeyStore) PublicKeyPEM() (string, error) {
	if s.publicKeyPEM == "" {
		return "", errors.New("keystore not initialized")
	}
	return s.publicKeyPEM, nil
}

// Decrypt decrypts one ciphertext with the cached private key.
func (s *fileKeyStore) Decrypt(ciphertext []byte) ([]byte, error) {
	if s.privateKey == nil {
		return nil, errors.New("keystore not initialized")
	}
	return s.processor.Decrypt(ciphertext, s.privateKey)
}

// loadInline parses the configured key material. Each value is accepted as
// raw PEM or as base64-encoded PEM; base64 decoding is attempted first and
// the raw value is used verbatim when it fails.
func (s *fileKeyStore) loadInline() error {
	pubPEM := decodeMaybeBase64(s.settings.PublicKey)
	privPEM := decodeMaybeBase64(s.settings.PrivateKey)

	publicKey, err := s.processor.ParsePublicKeyPEM(pubPEM)
	if err != nil {
		return fmt.Errorf("configured public key: %w", err)
	}
	privateKey, err := s.processor.ParsePrivateKeyPEM(privPEM)
	if err != nil {
		return fmt.Errorf("configured private key: %w", err)
	}

	return s.cache(privateKey, publicKey)
}

func (s *fileKeyStore) loadFromFiles() error {
	publicKey, err := s.processor.ReadPublicKeyFromFile(s.settings.PublicKeyPath)
	if err != nil {
		return err
	}
	privateKey, err := s.processor.ReadPrivateKeyFromFile(s.settings.PrivateKeyPath)
	if err != nil {
		return err
	}
	return s.cache(privateKey, publicKey)
}

func (s *fileKeyStore) generateAndPersist() error {
	privateKey, publicKey, err := s.processor.GenerateKeys(generatedKeySize)
	if err != nil {
		return err
	}

	for _, path := range []string{s.settings.PublicKeyPath, s.settings.PrivateKeyPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create key directory %s: %w", dir, err)
			}
		}
	}

	if err := s.processor.SavePublicKeyToFile(publicKey, s.settings.PublicKeyPath); err != nil {
		return err
	}
	if err := s.processor.SavePrivateKeyToFile(privateKey, s.settings.PrivateKeyPath); err != nil {
		return err
	}

	return s.cache(privateKey, publicKey)
}

func (s *fileKeyStore) cache(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) error {
	pubPEM, err := s.processor.EncodePublicKeyPEM(publicKey)
	if err != nil {
		return err
	}
	s.privateKey = privateKey
	s.publicKeyPEM = pubPEM
	return nil
}

func decodeMaybeBase64(value string) []byte {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return []byte(value)
	}
	return decoded
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
