package config

import "time"

// Defaults applied by validate for optional settings.
const (
	defaultTokenDuration  = time.Hour
	defaultRequestTimeout = 30 * time.Second
	defaultTokenIssuer    = "route-atlas"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server depends on at startup and fills in defaults for
// optional fields.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	return nil
}
