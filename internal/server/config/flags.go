package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-m string   storage backend: postgres or memory
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-l string   log level
//	-f string   log file
//	-r string   Redis URL for login throttling
//	-b string   S3 bucket name
//	-e string   S3 base endpoint
//
// Only these flags are considered; everything else in os.Args is filtered
// out with flagx.FilterArgs first.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-m", "-s", "-t", "-l", "-f", "-r", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.StorageBackend, "m", config.StorageBackend, "storage backend (postgres|memory)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
