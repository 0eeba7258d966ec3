package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	outputFormat string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "krbticket",
		Short: "Idempotent Kerberos ticket management",
		Long: `krbticket obtains a Kerberos ticket for username@realm via the system
krb5 tools. It does nothing when a valid ticket for that principal
already exists - unless --force is given.`,
	}

	// Get default config path from env var if set
	defaultConfig := os.Getenv("KRBTICKET_CONFIG")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfig, "Config file path (env: KRBTICKET_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(ensureCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the stderr logger. Result objects go to stdout; logs
// never do.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
