package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors the environment variables understood by the server.
// Unset variables leave the pre-filled value untouched.
type EnvConfig struct {
	Environment              string `env:"ENVIRONMENT" env-description:"deployment name; production forbids the default secret"`
	EndpointAddrHTTP         string `env:"HTTP_ADDR" env-description:"HTTP bind address"`
	EndpointAddrGRPC         string `env:"GRPC_ADDR" env-description:"gRPC bind address"`
	StorageBackend           string `env:"STORAGE_BACKEND" env-description:"postgres or memory"`
	DatabaseDSN              string `env:"DATABASE_URL" env-description:"PostgreSQL DSN"`
	SecretKey                string `env:"SECRET_KEY" env-description:"HS256 signing secret"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-description:"access token lifetime in minutes"`
	BcryptCost               int    `env:"BCRYPT_COST" env-description:"bcrypt work factor"`
	LogLevel                 string `env:"LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat                string `env:"LOG_FORMAT" env-description:"json or text"`
	LogFile                  string `env:"LOG_FILE" env-description:"log file path"`
	UploadBackend            string `env:"UPLOAD_BACKEND" env-description:"s3 or memory"`
	UploadMaxBytes           int64  `env:"UPLOAD_MAX_BYTES" env-description:"maximum upload size"`
	S3RootUser               string `env:"S3_ACCESS_KEY" env-description:"S3 access key"`
	S3RootPassword           string `env:"S3_SECRET_KEY" env-description:"S3 secret key"`
	S3Bucket                 string `env:"S3_BUCKET" env-description:"S3 bucket"`
	S3Region                 string `env:"S3_REGION" env-description:"S3 region"`
	S3BaseEndpoint           string `env:"S3_ENDPOINT" env-description:"S3 base endpoint"`
	RedisURL                 string `env:"REDIS_URL" env-description:"Redis URL for login throttling"`
	LoginRateLimit           int    `env:"LOGIN_RATE_LIMIT" env-description:"login attempts per window"`
	LoginRateWindowSeconds   int    `env:"LOGIN_RATE_WINDOW_SECONDS" env-description:"login throttling window in seconds"`
}

// loadDotenv is a seam for testing godotenv.Load.
var loadDotenv = godotenv.Load

// parseEnv loads an optional dotenv file (-env flag, else ./.env) and then
// overlays environment variables onto config. Variables already present in
// the process environment win over the dotenv file.
func parseEnv(config *Config) {
	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := loadDotenv(path); err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		panic(err)
	}

	e := &EnvConfig{
		Environment:              config.Environment,
		EndpointAddrHTTP:         config.EndpointAddrHTTP,
		EndpointAddrGRPC:         config.EndpointAddrGRPC,
		StorageBackend:           config.StorageBackend,
		DatabaseDSN:              config.DatabaseDSN,
		SecretKey:                config.SecretKey,
		AccessTokenExpireMinutes: int(config.AccessTokenValidityDuration.Minutes()),
		BcryptCost:               config.BcryptCost,
		LogLevel:                 config.LogLevel,
		LogFormat:                config.LogFormat,
		LogFile:                  config.LogFile,
		UploadBackend:            config.UploadBackend,
		UploadMaxBytes:           config.UploadMaxBytes,
		S3RootUser:               config.S3RootUser,
		S3RootPassword:           config.S3RootPassword,
		S3Bucket:                 config.S3Bucket,
		S3Region:                 config.S3Region,
		S3BaseEndpoint:           config.S3BaseEndpoint,
		RedisURL:                 config.RedisURL,
		LoginRateLimit:           config.LoginRateLimit,
		LoginRateWindowSeconds:   int(config.LoginRateWindow.Seconds()),
	}

	if err := cleanenv.ReadEnv(e); err != nil {
		panic(err)
	}

	config.Environment = e.Environment
	config.EndpointAddrHTTP = e.EndpointAddrHTTP
	config.EndpointAddrGRPC = e.EndpointAddrGRPC
	config.StorageBackend = e.StorageBackend
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.AccessTokenValidityDuration = time.Duration(e.AccessTokenExpireMinutes) * time.Minute
	config.BcryptCost = e.BcryptCost
	config.LogLevel = e.LogLevel
	config.LogFormat = e.LogFormat
	config.LogFile = e.LogFile
	config.UploadBackend = e.UploadBackend
	config.UploadMaxBytes = e.UploadMaxBytes
	config.S3RootUser = e.S3RootUser
	config.S3RootPassword = e.S3RootPassword
	config.S3Bucket = e.S3Bucket
	config.S3Region = e.S3Region
	config.S3BaseEndpoint = e.S3BaseEndpoint
	config.RedisURL = e.RedisURL
	config.LoginRateLimit = e.LoginRateLimit
	config.LoginRateWindow = time.Duration(e.LoginRateWindowSeconds) * time.Second
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	text, err := cleanenv.GetDescription(&EnvConfig{}, nil)
	if err != nil {
		return ""
	}
	return text
}
