package cryptography

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" // OAEP digest fixed by the browser-side encryption library
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"payment_intake_service/internal/domain/keys"
	"payment_intake_service/internal/pkg/logger"
)

const (
	publicKeyPEMType  = "PUBLIC KEY"
	privateKeyPEMType = "PRIVATE KEY"
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger) (keys.RSAProcessor, error) {
	return &rsaProcessor{
		logger: logger,
	}, nil
}

// GenerateKeys generates an RSA key pair with the specified bit size.
// 2048 is the minimum used in production.
func (r *rsaProcessor) GenerateKeys(keySize int) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, keySize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	publicKey := &privateKey.PublicKey
	r.logger.Info("Generated RSA key pair")
	return privateKey, publicKey, nil
}

// Encrypt encrypts plaintext using RSA-OAEP/SHA-1 with the public key.
// The plaintext must fit in one RSA block (key size minus OAEP overhead,
// 214 bytes for a 2048-bit key); the payment payload always does.
func (r *rsaProcessor) Encrypt(plainText []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}

	cipherText, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, publicKey, plainText, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	return cipherText, nil
}

// Decrypt decrypts RSA-OAEP/SHA-1 ciphertext using the private key.
// Decryption is deterministic for a fixed keypair and ciphertext, so a
// failure is final and never retried.
func (r *rsaProcessor) Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}

	plainText, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, privateKey, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}

	return plainText, nil
}

// EncodePublicKeyPEM encodes the public key as SPKI PEM.
func (r *rsaProcessor) EncodePublicKeyPEM(publicKey *rsa.PublicKey) (string, error) {
	pubKeyBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	pubKeyPem := pem.EncodeToMemory(&pem.Block{
		Type:  publicKeyPEMType,
		Bytes: pubKeyBytes,
	})
	return string(pubKeyPem), nil
}

// EncodePrivateKeyPEM encodes the private key as PKCS#8 PEM.
func (r *rsaProcessor) EncodePrivateKeyPEM(privateKey *rsa.PrivateKey) (string, error) {
	privKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal private key: %w", err)
	}

	privKeyPem := pem.EncodeToMemory(&pem.Block{
		Type:  privateKeyPEMType,
		Bytes: privKeyBytes,
	})
	return string(privKeyPem), nil
}

// ParsePublicKeyPEM parses a PEM public key, trying SPKI first and PKCS#1
// as a fallback.
func (r *rsaProcessor) ParsePublicKeyPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the public key")
	}

	pubKeyInterface, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err == nil {
		publicKey, ok := pubKeyInterface.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("public key is not of type RSA")
		}
		return publicKey, nil
	}

	publicKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key in either SPKI or PKCS#1 format: %w", err)
	}
	return publicKey, nil
}

// ParsePrivateKeyPEM parses a PEM private key, trying PKCS#8 first and
// PKCS#1 as a fallback.
func (r *rsaProcessor) ParsePrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the private key")
	}

	privKeyInterface, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		privateKey, ok := privKeyInterface.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("private key is not of type RSA")
		}
		return privateKey, nil
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key in either PKCS#8 or PKCS#1 format: %w", err)
	}
	return privateKey, nil
}

// SavePublicKeyToFile saves the RSA public key to a PEM-encoded file (SPKI format).
func (r *rsaProcessor) SavePublicKeyToFile(publicKey *rsa.PublicKey, filename string) error {
	pubKeyPem, err := r.EncodePublicKeyPEM(publicKey)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(filename), []byte(pubKeyPem), 0o644); err != nil {
		return fmt.Errorf("failed to write public key file: %w", err)
	}

	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// SavePrivateKeyToFile saves the RSA private key to a PEM-encoded file
// (PKCS#8 format) readable only by the owner.
func (r *rsaProcessor) SavePrivateKeyToFile(privateKey *rsa.PrivateKey, filename string) error {
	privKeyPem, err := r.EncodePrivateKeyPEM(privateKey)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Clean(filename), []byte(privKeyPem), 0o600); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}

	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// ReadPublicKeyFromFile reads an RSA public key from a PEM-encoded file.
func (r *rsaProcessor) ReadPublicKeyFromFile(path string) (*rsa.PublicKey, error) {
	pubKeyPEM, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}
	return r.ParsePublicKeyPEM(pubKeyPEM)
}

// ReadPrivateKeyFromFile reads an RSA private key from a PEM-encoded file.
func (r *rsaProcessor) ReadPrivateKeyFromFile(path string) (*rsa.PrivateKey, error) {
	privKeyPEM, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	return r.ParsePrivateKeyPEM(privKeyPEM)
}
