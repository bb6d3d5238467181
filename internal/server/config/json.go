package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
	"github.com/dmitrijs2005/todoapi/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// strings such as "1h" or integer nanoseconds. Pointer and zero fields are
// treated as "not set" and leave the current value untouched.
type JsonConfig struct {
	HTTPAddr       string          `json:"http_addr"`
	GRPCAddr       string          `json:"grpc_addr"`
	DatabaseDSN    string          `json:"database_dsn"`
	SecretKey      string          `json:"secret_key"`
	AccessTokenTTL *timex.Duration `json:"access_token_ttl"`
	BcryptCost     *int            `json:"bcrypt_cost"`
	ClockSkew      *timex.Duration `json:"clock_skew"`
	LogLevel       string          `json:"log_level"`
	CORSOrigins    []string        `json:"cors_origins"`
}

// parseJson overlays Config with the file named by -c / -config. Nothing
// happens when no file is given. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenTTL != nil {
		config.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.ClockSkew != nil {
		config.ClockSkew = c.ClockSkew.Duration
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
