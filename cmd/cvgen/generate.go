package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cv-generator/internal/bootstrap"
	"cv-generator/internal/domain"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full pipeline for one job posting",
	Long: `Generate reads a job description, produces the CV, the English cover
letter, its translation and the merged application PDF, and prints the
result as JSON. Use --job - to read the description from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		jobPath, _ := cmd.Flags().GetString("job")
		source, _ := cmd.Flags().GetString("source")

		if profile != "" {
			cfg.ProfileFile = profile
		}
		if source == "" {
			source = cfg.DefaultJobSource
		}
		desc, err := readJob(jobPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, err := bootstrap.Build(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer app.Close()

		res, err := app.Processor.Process(ctx, domain.NewJobPosting(desc, source))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	},
}

func readJob(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--job is required")
	}
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(b), nil
}

func init() {
	generateCmd.Flags().String("profile", "", "YAML profile file (default: PROFILE_FILE, else the database)")
	generateCmd.Flags().String("job", "", "file holding the job description, or - for stdin")
	generateCmd.Flags().String("source", "", "where the posting was found (default: DEFAULT_JOB_SOURCE)")

	rootCmd.AddCommand(generateCmd)
}
