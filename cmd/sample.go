package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/sample"
)

var (
	sampleFramework string
	sampleSector    string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a complete example analysis request",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(sample.Request(model.FrameworkID(sampleFramework), sampleSector), "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal sample request")
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleFramework, "framework", string(model.FrameworkMedtech), "framework to stamp on the request")
	sampleCmd.Flags().StringVar(&sampleSector, "sector", "diagnostics", "sector to stamp on the request")
	rootCmd.AddCommand(sampleCmd)
}
