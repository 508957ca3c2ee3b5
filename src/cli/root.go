// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli implements the netting command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/H0llyW00dzZ/netting/src/netting"
	"github.com/H0llyW00dzZ/netting/src/report"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// app carries state shared by the commands of one invocation.
type app struct {
	configPath string
	xlsxPath   string
	verbose    bool

	cfg    Config
	logger *zap.Logger

	// newLogger is replaceable in tests.
	newLogger func(verbose bool) (*zap.Logger, error)
}

func defaultLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{newLogger: defaultLogger})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "netting",
		Short: "Network diagnostics for a domain: HTTPS reachability, DNS records and TLS certificate",
		Long: `netting inspects a domain from the outside:

  connectivity  GET https://<domain> and report status and response time
  dns           A, AAAA, NS, MX and TXT records
  cert          the leaf certificate presented on port 443 (never verified)
  inspect       all of the above

Settings come from flags, NETTING_* environment variables and an optional
.netting.yaml file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(viper.New(), a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := a.newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			a.logger.Debug("configuration loaded", zap.Any("config", cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default is ./.netting.yaml or $HOME/.netting.yaml)")
	pf.StringVar(&a.xlsxPath, "xlsx", "", "also write the results to this XLSX workbook")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")
	registerFlags(pf)

	root.AddCommand(
		a.checkCommand("connectivity <domain>", "Check HTTPS reachability and response time", report.CheckConnectivity),
		a.checkCommand("dns <domain>", "Look up A, AAAA, NS, MX and TXT records", report.CheckDNS),
		a.checkCommand("cert <domain>", "Show the TLS certificate a domain presents", report.CheckCertificate),
		a.checkCommand("inspect <domain>", "Run the connectivity, DNS and certificate checks", report.CheckAll),
		versionCommand(),
	)

	return root
}

// checkCommand builds a command that runs checks for its argument.
func (a *app) checkCommand(use, short string, checks report.Check) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChecks(cmd.Context(), cmd.OutOrStdout(), args[0], checks)
		},
	}
}

func (a *app) runChecks(ctx context.Context, out io.Writer, arg string, checks report.Check) error {
	format, err := report.ParseFormat(a.cfg.Output)
	if err != nil {
		return err
	}

	domain := netting.NormalizeDomain(arg)
	if !netting.IsValidDomain(domain) {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, arg)
	}

	checker := netting.New(a.cfg.options(a.logger)...)
	r := report.Collect(ctx, checker, domain, checks)

	if err := report.Write(out, format, r); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if a.xlsxPath != "" {
		if err := report.SaveXLSX(a.xlsxPath, r); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		a.logger.Info("workbook written", zap.String("path", a.xlsxPath))
	}

	if r.Failed() {
		return ErrChecksFailed
	}
	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// The version does not depend on configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netting %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Execute runs the root command and exits with a non-zero status on
// failure. A failed check exits with 1 after its result was printed;
// usage and configuration errors exit with 2.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, ErrChecksFailed):
		stop()
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(2)
	}
}
