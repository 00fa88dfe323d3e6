// Package cli builds the dlctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/docstore"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/loader"
	service "github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/app"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/config"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/output"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/pkg/logger"
)

// ErrInvalidData is returned by validate when the audit finds problems.
var ErrInvalidData = errors.New("data directory has problems")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	source      string
	packScoring string
	noColor     bool

	cfg *config.Config
}

// NewRootCommand returns the dlctl command tree. Reports go to the command's
// output writer and logs to its error writer.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dlctl",
		Short: "Inspect a demon list from the terminal",
		Long: `dlctl reads a demon list from a directory or an http(s) base URL and
prints the ranked list, the leaderboard and the packs. It can also audit a
data directory and export the leaderboard as a spreadsheet.

Settings come from DLIST_* environment variables, an optional .env file and
the YAML file named by DLIST_CONFIG. Flags override them.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.source, "source", "s", "", "Data source: directory or http(s) base URL")
	root.PersistentFlags().StringVar(&a.packScoring, "pack-scoring", "", "Pack policy (none|half)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable styled output")

	root.AddCommand(
		newLeaderboardCommand(a),
		newListCommand(a),
		newPacksCommand(a),
		newValidateCommand(a),
		newExportCommand(a),
	)
	return root
}

// Execute runs dlctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("source") {
		cfg.DataSource = a.source
	}
	if cmd.Flags().Changed("pack-scoring") {
		cfg.PackScoring = a.packScoring
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func (a *app) service() (*service.Service, error) {
	store, err := docstore.Open(a.cfg.DataSource, docstore.WithTimeout(a.cfg.FetchTimeout()))
	if err != nil {
		return nil, err
	}
	l, err := loader.New(store,
		loader.WithConcurrency(a.cfg.FetchConcurrency),
		loader.WithLogger(logger.Named("loader")),
	)
	if err != nil {
		return nil, err
	}
	return service.New(l,
		service.WithPackPolicy(a.cfg.PackPolicy()),
		service.WithLogger(logger.Named("service")),
	), nil
}

func (a *app) console(w io.Writer) *output.Console {
	return output.NewConsole(w, output.WithColor(!a.noColor))
}

func wrap(what string, err error) error {
	return fmt.Errorf("%s: %w", what, err)
}
