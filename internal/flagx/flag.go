// Package flagx contains helpers for parsing a subset of command-line flags
// without colliding with flags owned by other packages or layers.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns only the allowed flags (and their values) from args.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// A value is taken from the next argument only when it does not itself
// start with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// LookupString extracts the value of a string flag known under any of the
// given names (without the leading dash). The last occurrence wins; an
// absent flag yields "".
func LookupString(args []string, names ...string) string {
	allowed := make([]string, 0, len(names))
	for _, n := range names {
		allowed = append(allowed, "-"+n)
	}

	var value string
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", n)
	}
	_ = fs.Parse(FilterArgs(args, allowed))

	return value
}

// JsonConfigFlags returns the JSON config path passed via -c or -config.
func JsonConfigFlags() string {
	return LookupString(os.Args[1:], "config", "c")
}

// EnvFileFlags returns the dotenv file path passed via -env.
func EnvFileFlags() string {
	return LookupString(os.Args[1:], "env")
}
