package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/schema"
)

var (
	validateModule string
	validateInput  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate one module payload against its schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := model.Module(validateModule)
		if !m.Valid() {
			return &model.ValidationError{Field: "module", Reason: fmt.Sprintf("unknown module %q", validateModule)}
		}
		data, err := readInput(cmd.InOrStdin(), validateInput)
		if err != nil {
			return err
		}
		if _, err := schema.Validate(m, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", m)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateModule, "module", "", "module name (tca, risk, macro, benchmark, growth, gap, funder, team, strategic)")
	validateCmd.Flags().StringVar(&validateInput, "input", "-", "payload JSON file (- for stdin)")
	_ = validateCmd.MarkFlagRequired("module")
	rootCmd.AddCommand(validateCmd)
}
