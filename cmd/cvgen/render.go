package main

import (
	"fmt"
	"os"
	"time"

	"cv-generator/internal/assemble"
	"cv-generator/internal/bootstrap"
	"cv-generator/internal/domain"
	"cv-generator/internal/model"
	"cv-generator/internal/output"
	"cv-generator/internal/render"
	"cv-generator/internal/sanitize"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <input.json>",
	Short: "Render a structured CV or letter to Markdown and PDF",
	Long: `Render takes a StructuredCV or StructuredLetter JSON document (code
fences around it are tolerated), assembles the Markdown and prints it to PDF
without calling a generation backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		title, _ := cmd.Flags().GetString("title")
		languages, _ := cmd.Flags().GetString("languages")
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.Output.Dir
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		m, err := sanitize.ExtractJSON(string(raw))
		if err != nil {
			return err
		}

		var (
			md       string
			artifact domain.ArtifactKind
			page     render.Page
		)
		switch kind {
		case "cv":
			cv, err := model.CVFromMap(m)
			if err != nil {
				return err
			}
			md = assemble.CVMarkdown(cv, languages)
			artifact = domain.KindCV
			page = render.Page{Layout: render.LayoutCV, Title: cv.PersonalInfo.FullName + " - CV"}
		case "letter":
			l, err := model.LetterFromMap(m)
			if err != nil {
				return err
			}
			md = assemble.LetterMarkdown(l)
			artifact = domain.KindCoverLetterEN
			page = render.Page{Layout: render.LayoutLetter, Title: l.Signature + " - Cover Letter"}
		default:
			return fmt.Errorf("unknown --kind %q (want cv or letter)", kind)
		}

		pipeline, err := bootstrap.NewPipeline(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		art, err := pipeline.RenderPDF(ctx, artifact, md, page)
		if err != nil {
			return err
		}

		mgr := output.NewManager(output.NewLocalStore(outDir), cfg.Output.RetentionPerType)
		ts := time.Now()
		title = output.SafeFilename(title)
		for _, f := range []struct {
			data []byte
			ext  string
		}{{[]byte(md), ".md"}, {art.PDF, ".pdf"}} {
			path, err := mgr.WriteArtifact(ctx, f.data, output.Filename(artifact, title, ts, f.ext))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("kind", "cv", "document kind: cv or letter")
	renderCmd.Flags().String("title", "Job", "job title used in the file name")
	renderCmd.Flags().String("languages", "", "languages line for a CV (default: "+assemble.DefaultLanguages+")")
	renderCmd.Flags().String("out", "", "output directory (default: OUTPUT_DIR)")

	rootCmd.AddCommand(renderCmd)
}
