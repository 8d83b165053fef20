package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

var (
	frameworksID     string
	frameworksSector string
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "Inspect framework scoring policies",
}

var frameworksShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved policy for a framework and sector as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		p, err := reg.Resolve(model.FrameworkID(frameworksID), frameworksSector)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return eris.Wrap(err, "encode policy")
		}
		return enc.Close()
	},
}

func init() {
	frameworksShowCmd.Flags().StringVar(&frameworksID, "framework", string(model.FrameworkGeneral), "framework (general or medtech)")
	frameworksShowCmd.Flags().StringVar(&frameworksSector, "sector", "", "sector the policy is resolved for")
	_ = frameworksShowCmd.MarkFlagRequired("sector")
	frameworksCmd.AddCommand(frameworksShowCmd)
	rootCmd.AddCommand(frameworksCmd)
}
