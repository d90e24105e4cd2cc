package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// envOverlay maps environment variables onto Config fields. Pointer fields
// distinguish "unset" from zero values so the overlay never clobbers an
// earlier layer with an empty default.
type envOverlay struct {
	EndpointAddr                 string         `env:"ADDRESS"`
	DatabaseDSN                  string         `env:"DB_URL"`
	SecretKey                    string         `env:"JWT_SECRET"`
	PolkaKey                     string         `env:"POLKA_KEY"`
	Platform                     string         `env:"PLATFORM"`
	AccessTokenValidityDuration  *time.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration *time.Duration `env:"REFRESH_TOKEN_TTL"`
	RotateRefreshOnLogin         *bool          `env:"ROTATE_REFRESH_ON_LOGIN"`
}

// parseEnv overlays environment variables onto config. A .env file in the
// working directory is loaded first if present; a missing .env is fine.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	overlay := &envOverlay{}
	if err := envconfig.Process(context.Background(), overlay); err != nil {
		panic(err)
	}

	if overlay.EndpointAddr != "" {
		config.EndpointAddr = overlay.EndpointAddr
	}
	if overlay.DatabaseDSN != "" {
		config.DatabaseDSN = overlay.DatabaseDSN
	}
	if overlay.SecretKey != "" {
		config.SecretKey = overlay.SecretKey
	}
	if overlay.PolkaKey != "" {
		config.PolkaKey = overlay.PolkaKey
	}
	if overlay.Platform != "" {
		config.Platform = overlay.Platform
	}
	if overlay.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *overlay.AccessTokenValidityDuration
	}
	if overlay.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = *overlay.RefreshTokenValidityDuration
	}
	if overlay.RotateRefreshOnLogin != nil {
		config.RotateRefreshOnLogin = *overlay.RotateRefreshOnLogin
	}
}
