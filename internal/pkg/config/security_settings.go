package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultSessionHeader is the shared-secret header checked by the session guard.
const DefaultSessionHeader = "X-Session-Token"

// SecuritySettings holds the perimeter configuration: origin allow-list,
// session guard, admin guard and submission rate limiting. Empty
// frontend_origin, session_secret or admin_api_key each disable the
// corresponding guard; the service logs a warning for every disabled guard
// since that is only acceptable for local research use.
type SecuritySettings struct {
	FrontendOrigin         string `mapstructure:"frontend_origin"`
	SessionHeader          string `mapstructure:"session_header"`
	SessionSecret          string `mapstructure:"session_secret"`
	AdminAPIKey            string `mapstructure:"admin_api_key"`
	RateLimitMax           int    `mapstructure:"rate_limit_max" validate:"required,min=1"`
	RateLimitWindowSeconds int    `mapstructure:"rate_limit_window_seconds" validate:"required,min=1"`
}

// Validate checks that all fields in SecuritySettings are valid
func (s *SecuritySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SecuritySettings: %w", err)
	}

	return nil
}

// SessionHeaderName returns the configured session header, falling back to
// the default when unset.
func (s *SecuritySettings) SessionHeaderName() string {
	if s.SessionHeader == "" {
		return DefaultSessionHeader
	}
	return s.SessionHeader
}

// SessionGuardEnabled reports whether the session guard is active.
func (s *SecuritySettings) SessionGuardEnabled() bool {
	return s.SessionSecret != ""
}
