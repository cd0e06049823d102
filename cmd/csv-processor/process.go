package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Ing-Eduardo-E/csv-processor/internal/config"
	"github.com/Ing-Eduardo-E/csv-processor/internal/exporter"
	"github.com/Ing-Eduardo-E/csv-processor/internal/infrastructure"
	"github.com/Ing-Eduardo-E/csv-processor/internal/services"
	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

func newProcessCmd() *cobra.Command {
	var (
		serviceType string
		mode        string
		format      string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Process one billing export file into an aggregate report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return err
			}

			service := domain.ServiceType(serviceType)
			if !service.Valid() {
				return fmt.Errorf("invalid service type %q (acueducto, alcantarillado, aseo)", serviceType)
			}
			reportMode := domain.ReportMode(mode)
			if !reportMode.Valid() {
				return fmt.Errorf("invalid report mode %q (monthly, annual)", mode)
			}

			svc := services.NewReportService(cfg.Limits.MaxUploadBytes, logger)
			rep, err := svc.GenerateFromFile(cmd.Context(), args[0], service, reportMode)
			if err != nil {
				var vErr *services.ValidationFailedError
				if errors.As(err, &vErr) {
					color.Red("El archivo no tiene las columnas requeridas:")
					for _, col := range vErr.Missing {
						fmt.Printf("  - %s\n", col)
					}
					return fmt.Errorf("column validation failed")
				}
				return err
			}

			name := exporter.FileName(service, reportMode, rep.GeneratedAt)
			var path string
			switch format {
			case "xlsx":
				path = filepath.Join(outDir, name+".xlsx")
				err = exporter.NewXLSXWriter(logger).WriteFile(path, rep)
			case "csv":
				path = filepath.Join(outDir, name+".csv")
				err = exporter.NewCSVWriter(logger).WriteFile(path, rep)
			default:
				return fmt.Errorf("invalid format %q (csv, xlsx)", format)
			}
			if err != nil {
				return err
			}

			color.Green("Reporte generado: %s", path)
			fmt.Printf("  servicio: %s, modo: %s, registros: %d, filas: %d\n",
				rep.ServiceType, rep.Mode, rep.RecordCount, len(rep.Rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&serviceType, "service", "s", string(domain.ServiceAcueducto), "service type: acueducto, alcantarillado or aseo")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.ReportModeMonthly), "report mode: monthly or annual")
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "output format: csv or xlsx")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}
