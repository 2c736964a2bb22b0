// Package cli implements pediactl, the operator command line for the
// scheduler.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"pediacenter/internal/bootstrap"
	"pediacenter/pkg/client"
	"pediacenter/pkg/config"
	"pediacenter/pkg/logger"

	"github.com/spf13/cobra"
)

const ServiceName = "pediactl"

// EnvServer is the default for --server.
const EnvServer = "PEDIACTL_SERVER"

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// BackendFactory opens the backend a command runs against. The returned
// func releases it.
type BackendFactory func(cmd *cobra.Command) (Backend, func() error, error)

type rootOptions struct {
	server  string
	verbose bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	return newRootCmd(opts, opts.openBackend)
}

// NewRootCmdWithBackend builds the command tree over a fixed backend.
func NewRootCmdWithBackend(b Backend) *cobra.Command {
	return newRootCmd(&rootOptions{}, func(*cobra.Command) (Backend, func() error, error) {
		return b, func() error { return nil }, nil
	})
}

func newRootCmd(opts *rootOptions, open BackendFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "pediactl",
		Short:         "Search slots and manage bookings for the pediatric clinic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", os.Getenv(EnvServer), "scheduler base URL; empty runs against the configured store directly")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newSlotsCmd(open))
	root.AddCommand(newBookCmd(open))
	root.AddCommand(newCancelCmd(open))
	root.AddCommand(newRescheduleCmd(open))
	root.AddCommand(newListCmd(open))
	root.AddCommand(newCheckIdentityCmd())
	root.AddCommand(newExtractCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) openBackend(cmd *cobra.Command) (Backend, func() error, error) {
	if o.server != "" {
		return NewRemoteBackend(client.NewHttpClient(o.server)), func() error { return nil }, nil
	}

	cfg := config.FromEnv(ServiceName)
	cfg.Log = logger.Discard()
	if o.verbose {
		cfg.Log = logger.New(logger.Config{
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cmd.ErrOrStderr(),
			Service: ServiceName,
		})
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	cfg.Connect()

	services, err := bootstrap.Build(cmd.Context(), cfg, nil, bootstrap.Options{})
	if err != nil {
		cfg.GracefulShutdown()
		return nil, nil, err
	}

	closeFn := func() error {
		err := services.Close()
		cfg.GracefulShutdown()
		return err
	}
	return NewLocalBackend(services), closeFn, nil
}

func withBackend(cmd *cobra.Command, open BackendFactory, fn func(ctx context.Context, b Backend) (any, error)) error {
	b, closeFn, err := open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := fn(ctx, b)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pediactl %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
