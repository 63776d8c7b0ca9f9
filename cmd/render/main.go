package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"resume-renderer/internal/model"
	"resume-renderer/internal/render"
	"resume-renderer/internal/usecase"
	infra "resume-renderer/pkg/infrastructure"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var inputFile string

//nolint:gochecknoglobals // Cobra boilerplate
var templateName string

//nolint:gochecknoglobals // Cobra boilerplate
var outFile string

//nolint:gochecknoglobals // Cobra boilerplate
var pdfFile string

//nolint:gochecknoglobals // Cobra boilerplate
var chromePath string

//nolint:gochecknoglobals // Cobra boilerplate
var pdfTimeout time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume request file to HTML or PDF",
	Long: `render reads a JSON render request (content, profile and optional
template) and writes the finished resume document.

Example:
  render --input req.json --out resume.html
  render --input req.json --template harvard --pdf resume.pdf
  cat req.json | render --input -`,
	SilenceUsage: true,
	RunE:         runRender,
}

//nolint:gochecknoglobals // Cobra boilerplate
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		for _, s := range render.Templates() {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name, s.Title)
			if err != nil {
				return err
			}
		}
		return err
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(templatesCmd)
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Render request JSON file, - for stdin")
	rootCmd.Flags().StringVarP(&templateName, "template", "t", "", "Template name (overrides the request)")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "", "HTML output file (default stdout unless --pdf is set)")
	rootCmd.Flags().StringVar(&pdfFile, "pdf", "", "PDF output file")
	rootCmd.Flags().StringVar(&chromePath, "chrome-path", os.Getenv("CHROME_PATH"), "Chrome executable for PDF output")
	rootCmd.Flags().DurationVar(&pdfTimeout, "timeout", 60*time.Second, "PDF render timeout")
	_ = rootCmd.MarkFlagRequired("input")
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	req, err := readRequest(cmd.InOrStdin(), inputFile)
	if err != nil {
		return err
	}
	if templateName != "" {
		req.Template = templateName
	}

	var renderer usecase.Renderer
	if pdfFile != "" {
		renderer = infra.NewChromedpRenderer(chromePath, pdfTimeout)
	}
	processor := usecase.NewProcessor(renderer, nil, nil, usecase.Options{Attempts: 1})

	html, err := processor.Preview(req)
	if err != nil {
		return err
	}

	switch {
	case outFile != "":
		err = os.WriteFile(outFile, []byte(html), 0o644)
		if err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
	case pdfFile == "":
		_, err = io.WriteString(cmd.OutOrStdout(), html)
		if err != nil {
			return err
		}
	}

	if pdfFile == "" {
		return err
	}

	pdf, err := processor.RenderPDF(context.Background(), req)
	if err != nil {
		return err
	}
	err = os.WriteFile(pdfFile, pdf, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", pdfFile, err)
	}
	return err
}

func readRequest(stdin io.Reader, path string) (req *model.RenderRequest, err error) {
	var body []byte
	if path == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	req, err = model.DecodeRenderRequest(body)
	return req, err
}
