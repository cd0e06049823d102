package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts"
)

func main() {
	root := &cobra.Command{
		Use:     "csv-processor",
		Short:   "Normalize utility billing exports and build periodic reports",
		Long:    "csv-processor ingests water, sewage and waste-collection billing export files (CSV or XLSX), normalizes them to the canonical schema and produces monthly or annual aggregate reports.",
		Version: contracts.Version,
	}

	root.AddCommand(newProcessCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
