package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/chirpy/internal/flagx"
	"github.com/dmitrijs2005/chirpy/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "1h" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	PolkaKey                     string         `json:"polka_key"`
	Platform                     string         `json:"platform"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	RotateRefreshOnLogin         *bool          `json:"rotate_refresh_on_login"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c/-config command-line
// flags; if neither is set, no JSON file is loaded. Unreadable or invalid
// files panic: a requested-but-broken config file is a startup defect.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.PolkaKey != "" {
		config.PolkaKey = c.PolkaKey
	}
	if c.Platform != "" {
		config.Platform = c.Platform
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	}
	if c.RotateRefreshOnLogin != nil {
		config.RotateRefreshOnLogin = *c.RotateRefreshOnLogin
	}
}
