// Package poolctl implements the administrative command-line client.
package poolctl

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/flagx"
)

// Config holds runtime settings for poolctl.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - GRPCAddr: host:port of the identity gRPC endpoint.
//   - SessionFile: SQLite file that keeps the current login.
//   - Timeout: per-request timeout.
type Config struct {
	ServerURL   string
	GRPCAddr    string
	SessionFile string
	Timeout     time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.GRPCAddr = "127.0.0.1:50051"
	c.SessionFile = defaultSessionFile()
	c.Timeout = 10 * time.Second
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "poolctl-session.db"
	}
	return filepath.Join(dir, "poolkeeper", "session.db")
}

// LoadConfig applies defaults and then command-line flags.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg, args)
	return cfg
}

// parseFlags reads the flags poolctl understands and ignores everything
// else, so the command name may appear anywhere.
//
//	-s string   HTTP API base URL
//	-g string   gRPC identity address
//	-f string   session file
//	-t int      request timeout in seconds
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-s", "-g", "-f", "-t"})

	fs := flag.NewFlagSet("poolctl", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "HTTP API base URL")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC identity address")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "session file")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}
	cfg.Timeout = time.Duration(*timeout) * time.Second
}

// Command returns the first argument that is not a flag or a flag value.
func Command(args []string) (string, []string) {
	valued := map[string]bool{"-s": true, "-g": true, "-f": true, "-t": true}
	for i := 0; i < len(args); i++ {
		a := args[i]
		if valued[a] {
			i++
			continue
		}
		if len(a) > 0 && a[0] == '-' {
			continue
		}
		return a, args[i+1:]
	}
	return "", nil
}
