package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded if present. Variables already set in the process
// environment take precedence over the file.
var envFile = ".env"

// parseEnv overlays Config with environment variables:
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_URL, SECRET_KEY,
//	ACCESS_TOKEN_EXPIRE_MINUTES (int), BCRYPT_COST (int),
//	CLOCK_SKEW (duration, e.g. "5s"), LOG_LEVEL, CORS_ORIGINS (comma separated).
//
// Malformed numeric or duration values panic, matching the behaviour of the
// JSON and flag sources.
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		config.HTTPAddr = v
	}
	if v, ok := os.LookupEnv("GRPC_ADDR"); ok {
		config.GRPCAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_EXPIRE_MINUTES"); ok {
		config.AccessTokenTTL = time.Duration(mustAtoi("ACCESS_TOKEN_EXPIRE_MINUTES", v)) * time.Minute
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		config.BcryptCost = mustAtoi("BCRYPT_COST", v)
	}
	if v, ok := os.LookupEnv("CLOCK_SKEW"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic("CLOCK_SKEW: " + err.Error())
		}
		config.ClockSkew = d
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}
}

func mustAtoi(name, v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
