package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// KeySettings holds the keypair sources, tried in order: inline key
// material (raw PEM or base64-encoded PEM), PEM files at the configured
// paths, generation. The paths are also the persistence target when a
// fresh keypair is generated.
type KeySettings struct {
	PublicKey      string `mapstructure:"public_key"`
	PrivateKey     string `mapstructure:"private_key"`
	PublicKeyPath  string `mapstructure:"public_key_path" validate:"required"`
	PrivateKeyPath string `mapstructure:"private_key_path" validate:"required"`
}

// Validate checks that all fields in KeySettings are valid
func (s *KeySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeySettings: %w", err)
	}

	// Inline material is optional, but a lone half of a pair is a
	// configuration mistake worth rejecting early.
	if (s.PublicKey == "") != (s.PrivateKey == "") {
		return fmt.Errorf("inline key material requires both public_key and private_key")
	}

	return nil
}
