/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"strings"

	"github.com/AeroNotix/sockstat/pkg/config"
)

var (
	errUnknownArgument = errors.New("unknown option")
	errMissingValue    = errors.New("missing value")
)

// argError ties a parse failure to the offending token.
type argError struct {
	err error
	arg string
}

func (e *argError) Error() string { return e.err.Error() + ": " + e.arg }
func (e *argError) Unwrap() error { return e.err }

// invocation is the outcome of parsing the command line.
type invocation struct {
	help       bool
	configFile string
	// overrides maps config keys to flag values; they win over env and file.
	overrides map[string]interface{}
}

var switchFlags = map[string]string{
	"--json":     config.KeyJSON,
	"--detailed": config.KeyDetailed,
}

var valueFlags = map[string]string{
	"--log-level": config.KeyLogLevel,
	"--log-file":  config.KeyLogFile,
	"--proc-root": config.KeyProcRoot,
	"--config":    "",
}

// parseArgs walks args left to right. "--help" ends parsing at once; the
// first unknown token or value-less flag is an error.
func parseArgs(args []string) (*invocation, error) {
	inv := &invocation{overrides: map[string]interface{}{}}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--help" {
			inv.help = true
			return inv, nil
		}
		if key, ok := switchFlags[arg]; ok {
			inv.overrides[key] = true
			continue
		}

		name, value, inline := strings.Cut(arg, "=")
		key, ok := valueFlags[name]
		if !ok {
			return inv, &argError{err: errUnknownArgument, arg: arg}
		}
		if !inline {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				return inv, &argError{err: errMissingValue, arg: name}
			}
			i++
			value = args[i]
		}
		if value == "" {
			return inv, &argError{err: errMissingValue, arg: name}
		}

		if name == "--config" {
			inv.configFile = value
		} else {
			inv.overrides[key] = value
		}
	}
	return inv, nil
}
