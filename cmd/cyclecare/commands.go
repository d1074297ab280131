package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/terraincognita07/cyclecare/internal/cli"
	"github.com/terraincognita07/cyclecare/internal/config"
	"github.com/terraincognita07/cyclecare/internal/db"
	"github.com/terraincognita07/cyclecare/internal/logger"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cyclecare",
		Short:         "Self-hosted menstrual cycle tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCommand(),
		newExportCommand(),
		newImportCommand(),
		newClearCommand(),
		newPasscodeHashCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newExportCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all cycles as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd.Context(), func(ctx context.Context, cfg *config.Config, backend *db.Backend, log *logger.Logger) error {
				if outPath == "" || outPath == "-" {
					return cli.RunExportCommand(ctx, backend.Store, cfg.Store.Key, cmd.OutOrStdout(), log)
				}
				file, err := createExportFile(outPath)
				if err != nil {
					return err
				}
				return writeAndClose(file, func(out io.Writer) error {
					return cli.RunExportCommand(ctx, backend.Store, cfg.Store.Key, out, log)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func createExportFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	return file, nil
}

// writeAndClose reports the close error when the write itself succeeded.
func writeAndClose(file io.WriteCloser, write func(io.Writer) error) error {
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace all cycles with the records of a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd.Context(), func(ctx context.Context, cfg *config.Config, backend *db.Backend, log *logger.Logger) error {
				var in io.Reader = cmd.InOrStdin()
				if args[0] != "-" {
					file, err := os.Open(filepath.Clean(args[0]))
					if err != nil {
						return fmt.Errorf("open import file: %w", err)
					}
					defer file.Close()
					in = file
				}
				count, err := cli.RunImportCommand(ctx, backend.Store, cfg.Store.Key, in, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d cycles\n", count)
				return nil
			})
		},
	}
}

func newClearCommand() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("refusing to clear data without --yes")
			}
			return withBackend(cmd.Context(), func(ctx context.Context, cfg *config.Config, backend *db.Backend, _ *logger.Logger) error {
				if err := cli.RunClearCommand(ctx, backend.Store, cfg.Store.Key); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all cycles deleted")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")
	return cmd
}

func newPasscodeHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passcode-hash",
		Short: "Hash an access passcode for ACCESS_PASSCODE_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.RunPasscodeHashCommand(
				cmd.OutOrStdout(),
				cli.TerminalPasscodeReader("Passcode: "),
				cli.TerminalPasscodeReader("Repeat passcode: "),
			)
		},
	}
}

type backendAction func(ctx context.Context, cfg *config.Config, backend *db.Backend, log *logger.Logger) error

func withBackend(ctx context.Context, action backendAction) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("close store failed", "error", err)
		}
	}()
	return action(ctx, cfg, backend, log)
}

func openBackend(ctx context.Context, cfg *config.Config) (*db.Backend, error) {
	backend, err := db.OpenBackend(ctx, db.BackendOptions{
		Kind:       cfg.Store.Backend,
		SQLitePath: cfg.Store.DBPath,
		RedisURL:   cfg.Store.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("store init failed: %w", err)
	}
	return backend, nil
}
