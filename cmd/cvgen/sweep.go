package main

import (
	"fmt"

	"cv-generator/internal/bootstrap"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Apply the per-type retention limit to the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		dir, _ := cmd.Flags().GetString("dir")
		if limit > 0 {
			cfg.Output.RetentionPerType = limit
		}
		if dir != "" {
			cfg.Output.Dir = dir
		}

		mgr, err := bootstrap.NewOutputManager(cmd.Context(), cfg, nil, logger)
		if err != nil {
			return err
		}
		report := mgr.Sweep(cmd.Context())
		for _, name := range report.Deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", name)
		}
		for _, name := range report.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed %s\n", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "kept at most %d per type, deleted %d\n", mgr.Limit(), len(report.Deleted))
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d files could not be deleted", len(report.Failed))
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().Int("limit", 0, "files to keep per type (default: OUTPUT_RETENTION_PER_TYPE)")
	sweepCmd.Flags().String("dir", "", "output directory (default: OUTPUT_DIR)")

	rootCmd.AddCommand(sweepCmd)
}
