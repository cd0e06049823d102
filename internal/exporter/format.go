package exporter

import (
	"fmt"
	"time"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// Headers returns the export column labels for a service type. Waste
// collection reports tariffs instead of the three totals.
func Headers(service domain.ServiceType) []string {
	if service == domain.ServiceAseo {
		return []string{"Periodo", "Estrato", "Usuarios", "Tarifa ($)"}
	}
	return []string{"Periodo", "Clase de Uso", "Usuarios", "Medidores/Aforo", "Total Consumo/Vertimiento", "Total Facturado", "Total Recaudo"}
}

// FormatRows renders report rows as export cells, floats with exactly
// two decimals so 13.4 shows as 13.40.
func FormatRows(service domain.ServiceType, rows []domain.ReportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if service == domain.ServiceAseo {
			out = append(out, []string{
				row.Periodo,
				formatInt(row.ClaseUso),
				formatInt(row.NumeroUsuarios),
				formatFloat(row.Tarifa),
			})
			continue
		}
		out = append(out, []string{
			row.Periodo,
			formatInt(row.ClaseUso),
			formatInt(row.NumeroUsuarios),
			formatInt(row.NumeroMedidores),
			formatFloat(row.TotalConsumo),
			formatFloat(row.TotalFacturado),
			formatFloat(row.TotalRecaudo),
		})
	}
	return out
}

// FileName builds the export file name, without extension:
// reporte_<service>_<mode>_<date>.
func FileName(service domain.ServiceType, mode domain.ReportMode, now time.Time) string {
	return fmt.Sprintf("reporte_%s_%s_%s", service, mode, now.Format("2006-01-02"))
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
