package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/audit"
	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/output"
)

func newLeaderboardCommand(a *app) *cobra.Command {
	var (
		query string
		top   int
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			view, err := svc.Leaderboard(cmd.Context(), query)
			if err != nil {
				return wrap("leaderboard", err)
			}
			a.console(cmd.OutOrStdout()).Leaderboard(view, top)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only users whose name contains this text")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Print at most this many users (0 prints all)")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the ranked list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			view, err := svc.List(cmd.Context(), query)
			if err != nil {
				return wrap("list", err)
			}
			a.console(cmd.OutOrStdout()).List(view)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only levels whose name contains this text")
	return cmd
}

func newPacksCommand(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Print the packs and their levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			view, err := svc.Packs(cmd.Context(), query)
			if err != nil {
				return wrap("packs", err)
			}
			a.console(cmd.OutOrStdout()).Packs(view)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only packs whose name contains this text")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dir>",
		Short: "Audit a data directory",
		Long: `validate checks every document in a data directory against the schema,
reports levels the manifest names but that are missing, duplicate entries and
documents nothing references. It exits non-zero when the list would not load
cleanly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := audit.Run(cmd.Context(), os.DirFS(args[0]))
			if err != nil {
				return wrap("validate", err)
			}
			if !a.console(cmd.OutOrStdout()).Audit(report) {
				return ErrInvalidData
			}
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the leaderboard to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			view, err := svc.Leaderboard(cmd.Context(), "")
			if err != nil {
				return wrap("export", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return wrap("export", err)
			}
			if err := output.WriteWorkbook(f, view); err != nil {
				_ = f.Close()
				return wrap("export", err)
			}
			if err := f.Close(); err != nil {
				return wrap("export", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d users to %s\n", len(view.Users), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "leaderboard.xlsx", "Workbook path")
	return cmd
}
