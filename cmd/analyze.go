package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/export"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

var (
	analyzeInput    string
	analyzeOutput   string
	analyzeXLSX     string
	analyzeMarkdown string
	analyzeHTML     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a comprehensive analysis from a request file",
	Long:  "Reads an analysis request (framework, sector, company data and module payloads) and writes the assembled report as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(cmd.InOrStdin(), analyzeInput)
		if err != nil {
			return err
		}

		env, err := initAnalyzer(cmd.Context(), "analyze")
		if err != nil {
			return err
		}
		defer env.Close()

		rep, err := env.Analyzer.Analyze(cmd.Context(), req)
		if err != nil {
			zap.L().Error("analysis failed", zap.String("kind", model.Kind(err)), zap.Error(err))
			return err
		}

		if err := writeReport(cmd.OutOrStdout(), analyzeOutput, rep); err != nil {
			return err
		}
		if analyzeXLSX != "" {
			if err := export.SaveXLSX(analyzeXLSX, rep); err != nil {
				return err
			}
			zap.L().Info("wrote workbook", zap.String("path", analyzeXLSX))
		}
		if analyzeMarkdown != "" {
			md := export.Markdown(rep, req.CompanyName())
			if err := os.WriteFile(analyzeMarkdown, []byte(md), 0o644); err != nil {
				return eris.Wrapf(err, "write markdown %s", analyzeMarkdown)
			}
			zap.L().Info("wrote markdown summary", zap.String("path", analyzeMarkdown))
		}
		if analyzeHTML != "" {
			page, err := export.HTML(rep, req.CompanyName())
			if err != nil {
				return err
			}
			if err := os.WriteFile(analyzeHTML, []byte(page), 0o644); err != nil {
				return eris.Wrapf(err, "write html %s", analyzeHTML)
			}
			zap.L().Info("wrote html summary", zap.String("path", analyzeHTML))
		}
		return nil
	},
}

// readRequest decodes an analysis request from path, or from stdin when
// path is "-".
func readRequest(stdin io.Reader, path string) (model.AnalysisRequest, error) {
	var req model.AnalysisRequest
	data, err := readInput(stdin, path)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return req, ve
		}
		return req, &model.ValidationError{Field: "body", Reason: "invalid JSON: " + err.Error()}
	}
	if err := checkModuleKeys(req); err != nil {
		return req, err
	}
	return req, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// checkModuleKeys rejects payloads for modules that do not exist.
func checkModuleKeys(req model.AnalysisRequest) error {
	for m := range req.Modules {
		if !m.Valid() {
			return &model.ValidationError{Field: "modules", Reason: "unknown module " + string(m)}
		}
	}
	return nil
}

func writeReport(stdout io.Writer, path string, rep *model.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal report")
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	zap.L().Info("wrote report", zap.String("path", path), zap.String("report_id", rep.ID))
	return nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "-", "request JSON file (- for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "-", "report JSON file (- for stdout)")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "also write an XLSX workbook to this path")
	analyzeCmd.Flags().StringVar(&analyzeMarkdown, "markdown", "", "also write a markdown summary to this path")
	analyzeCmd.Flags().StringVar(&analyzeHTML, "html", "", "also write the summary rendered as HTML to this path")
	rootCmd.AddCommand(analyzeCmd)
}
