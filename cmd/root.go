/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AeroNotix/sockstat/pkg/config"
	"github.com/AeroNotix/sockstat/pkg/logging"
	"github.com/AeroNotix/sockstat/pkg/summary"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sockstat",
		Short: "Summarise kernel socket statistics",
		Long: `sockstat reads /proc/net/sockstat and prints it either as is or,
with --json, as a JSON object holding SocketsUsed, TCPInUse and UDPInUse.`,
		Example: `  sockstat --json
  sockstat --log-level DEBUG
  sockstat --json --log-level WARNING
  sockstat --detailed --proc-root /host/proc`,
		// Arguments are parsed by parseArgs so that --help and unknown
		// options are handled strictly in order.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE:               run,
	}

	f := cmd.Flags()
	f.Bool("json", false, "Output socket summary in JSON format")
	f.Bool("detailed", false, "Output every sockstat counter as nested JSON")
	f.String("log-level", logging.DefaultLevel, "Set log level (DEBUG, INFO, WARNING, ERROR)")
	f.String("log-file", "", "Also write log lines to this file, rotated by size")
	f.String("proc-root", "/proc", "Mount point of the proc filesystem")
	f.String("config", "", "config file (default is $HOME/.sockstat.yaml)")
	f.Bool("help", false, "Display this help message")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	inv, err := parseArgs(args)
	if err != nil {
		reportArgError(cmd, logging.New(logging.DefaultLevel, out), err)
		return err
	}
	if inv.help {
		fmt.Fprint(out, cmd.UsageString())
		return nil
	}

	v := config.NewViper()
	for key, value := range inv.overrides {
		v.Set(key, value)
	}
	cfg, err := config.Load(v, inv.configFile)
	if err != nil {
		logging.New(logging.DefaultLevel, out).Errorf("%v", err)
		return err
	}

	invalid := cfg.Validate()
	requested := cfg.LogLevel
	if invalid != nil {
		cfg.LogLevel = logging.DefaultLevel
	}

	log := logging.New(cfg.LogLevel, out)
	defer log.Close()

	if invalid != nil {
		log.Warnf("Invalid LOG_LEVEL: %s. Using default: %s", requested, cfg.LogLevel)
	}
	if err := cfg.ApplyLogging(log); err != nil {
		log.Errorf("%v", err)
		return err
	}
	if cfg.File != "" {
		log.Debugf("Using config file: %s", cfg.File)
	}

	return summary.Run(cfg, log, out)
}

// reportArgError logs a parse failure; unknown options also get the usage.
func reportArgError(cmd *cobra.Command, log *logging.Logger, err error) {
	var ae *argError
	if !errors.As(err, &ae) {
		log.Errorf("%v", err)
		return
	}
	if errors.Is(err, errMissingValue) {
		log.Errorf("Missing value for %s", ae.arg)
		return
	}
	log.Errorf("Unknown option: %s", ae.arg)
	fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
}

// Execute runs the root command and exits non-zero on any failure. This is
// called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
