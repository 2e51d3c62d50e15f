package keys

import (
	"crypto/rsa"
)

// RSAProcessor handles the RSA operations of the intake handshake.
// Encryption uses OAEP with SHA-1 for parity with the browser-side
// encryption library; plaintexts are limited to one RSA block.
type RSAProcessor interface {
	// GenerateKeys generates an RSA key pair with the specified bit size.
	// 2048 is the minimum used in production.
	GenerateKeys(keySize int) (*rsa.PrivateKey, *rsa.PublicKey, error)

	// Encrypt encrypts plaintext using RSA-OAEP/SHA-1 with the public key.
	Encrypt(plainText []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// Decrypt decrypts RSA-OAEP/SHA-1 ciphertext using the private key.
	Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// EncodePublicKeyPEM encodes the public key as SPKI PEM.
	EncodePublicKeyPEM(publicKey *rsa.PublicKey) (string, error)

	// EncodePrivateKeyPEM encodes the private key as PKCS#8 PEM.
	EncodePrivateKeyPEM(privateKey *rsa.PrivateKey) (string, error)

	// ParsePublicKeyPEM parses an SPKI (or PKCS#1) PEM public key.
	ParsePublicKeyPEM(pemBytes []byte) (*rsa.PublicKey, error)

	// ParsePrivateKeyPEM parses a PKCS#8 (or PKCS#1) PEM private key.
	ParsePrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error)

	// SavePublicKeyToFile writes the public key as SPKI PEM.
	SavePublicKeyToFile(publicKey *rsa.PublicKey, filename string) error

	// SavePrivateKeyToFile writes the private key as PKCS#8 PEM with
	// owner-only permissions.
	SavePrivateKeyToFile(privateKey *rsa.PrivateKey, filename string) error

	// ReadPublicKeyFromFile reads an SPKI PEM public key file.
	ReadPublicKeyFromFile(path string) (*rsa.PublicKey, error)

	// ReadPrivateKeyFromFile reads a PKCS#8 PEM private key file.
	ReadPrivateKeyFromFile(path string) (*rsa.PrivateKey, error)
}

// KeyStore owns the process keypair. It is initialized once at startup and
// read-only afterwards; the private key never leaves the store.
type KeyStore interface {
	// Initialize resolves the keypair from configuration, disk or
	// generation, in that order, and caches it for the process lifetime.
	Initialize() error

	// PublicKeyPEM returns the cached public key as a PEM string.
	PublicKeyPEM() (string, error)

	// Decrypt decrypts one ciphertext with the cached private key. This is
	// the only decryption capability the rest of the system sees.
	Decrypt(ciphertext []byte) ([]byte, error)
}
