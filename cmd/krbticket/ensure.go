package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KrbTicketProject/krbticket/pkg/config"
	"github.com/KrbTicketProject/krbticket/pkg/krb5"
	"github.com/KrbTicketProject/krbticket/pkg/request"
)

var (
	ensureUsername  string
	ensureRealm     string
	ensureForce     bool
	forwardableFlag bool
	nonForwardable  bool
	checkMode       bool
	passwordFile    string
	ensureTimeout   time.Duration
)

func ensureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Ensure a valid ticket exists for a principal",
		Long: `Ensure a valid Kerberos ticket exists for username@realm.

If a valid ticket for the principal is already held, nothing happens.
With --force, any existing ticket is destroyed and a fresh one obtained.
With --check, the action that would be taken is reported without
performing it.

The password is never accepted as a command-line argument. It is read
from --password-file (use "-" for stdin), from the KRBTICKET_PASSWORD
environment variable, or from an interactive prompt.

Examples:
  # Obtain a ticket if needed
  krbticket ensure --username alice --realm EXAMPLE.COM

  # Always obtain a fresh ticket, forwardable
  krbticket ensure --username alice --realm EXAMPLE.COM --force --forwardable

  # See what would happen, without doing it
  krbticket ensure --username alice --realm EXAMPLE.COM --check`,
		SilenceUsage: true,
		RunE:         runEnsure,
	}

	cmd.Flags().StringVarP(&ensureUsername, "username", "u", "", "Kerberos username (required)")
	cmd.Flags().StringVarP(&ensureRealm, "realm", "r", "", "Kerberos realm (default: config file, then krb5.conf)")
	cmd.Flags().BoolVar(&ensureForce, "force", false, "Obtain a new ticket even when a valid one exists")
	cmd.Flags().BoolVar(&forwardableFlag, "forwardable", false, "Request a forwardable ticket")
	cmd.Flags().BoolVar(&nonForwardable, "non-forwardable", false, "Request a non-forwardable ticket")
	cmd.Flags().BoolVar(&checkMode, "check", false, "Report the action without performing it")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "Read the password from this file (\"-\" for stdin)")
	cmd.Flags().DurationVar(&ensureTimeout, "timeout", 0, "Bound on the whole request (default: config file, then 30s)")

	cmd.MarkFlagsMutuallyExclusive("forwardable", "non-forwardable")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runEnsure(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	realm := ensureRealm
	if realm == "" {
		realm = cfg.DefaultRealm()
	}

	var forwardable *bool
	switch {
	case forwardableFlag:
		v := true
		forwardable = &v
	case nonForwardable:
		v := false
		forwardable = &v
	default:
		forwardable = cfg.Forwardable
	}

	timeout := ensureTimeout
	if timeout == 0 {
		timeout = cfg.Timeout.Duration()
	}

	password, err := resolvePassword(passwordFile)
	if err != nil {
		return err
	}

	tools := krb5.NewExecToolchain(krb5.Options{
		KlistPath:    cfg.Tools.Klist,
		KinitPath:    cfg.Tools.Kinit,
		KdestroyPath: cfg.Tools.Kdestroy,
		Logger:       logger,
	})
	proc := request.NewProcessor(tools, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, runErr := proc.Run(ctx, request.Request{
		Username:    ensureUsername,
		Password:    password,
		Realm:       realm,
		Force:       ensureForce,
		Forwardable: forwardable,
		DryRun:      checkMode,
	})

	if err := request.Write(os.Stdout, res, outputFormat); err != nil {
		return err
	}
	return runErr
}

// loadConfig loads the config file named by --config, falling back to the
// per-user default location, falling back to built-in defaults.
func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfgPath, err)
		}
		return cfg, nil
	}
	if path := config.DefaultPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return config.Load(path)
		}
	}
	return config.Default(), nil
}
