package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/poolkeeper/internal/flagx"
	"github.com/dmitrijs2005/poolkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON configuration file. Durations
// use timex.Duration so both "30m" and integer nanoseconds are accepted.
type JsonConfig struct {
	Environment                 string         `json:"environment"`
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	StorageBackend              string         `json:"storage_backend"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
	LogFile                     string         `json:"log_file"`
	UploadBackend               string         `json:"upload_backend"`
	UploadMaxBytes              int64          `json:"upload_max_bytes"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	RedisURL                    string         `json:"redis_url"`
	LoginRateLimit              int            `json:"login_rate_limit"`
	LoginRateWindow             timex.Duration `json:"login_rate_window"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setNumber[T ~int | ~int64](dst *T, v T) {
	if v != 0 {
		*dst = v
	}
}

// parseJson overlays values from the JSON file named by -c/-config onto
// config. Keys missing from the file keep their current value. An unreadable
// file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Environment, c.Environment)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setNumber(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	setNumber(&config.BcryptCost, c.BcryptCost)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogFile, c.LogFile)
	setString(&config.UploadBackend, c.UploadBackend)
	setNumber(&config.UploadMaxBytes, c.UploadMaxBytes)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.RedisURL, c.RedisURL)
	setNumber(&config.LoginRateLimit, c.LoginRateLimit)
	setNumber(&config.LoginRateWindow, c.LoginRateWindow.Duration)
	setNumber(&config.ShutdownTimeout, c.ShutdownTimeout.Duration)
}
