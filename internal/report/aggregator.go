// Package report implements the period aggregation that turns
// canonical billing records into monthly or annual report rows.
package report

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// Aggregator groups canonical records by (period, usage class) and
// produces the sorted report rows for one service type.
type Aggregator struct {
	service domain.ServiceType
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator for the given service type.
func NewAggregator(service domain.ServiceType, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		service: service,
		logger:  logger.With(slog.String("component", "aggregator"), slog.String("service", string(service))),
	}
}

// bucket accumulates one (period, usage class) group. Sums stay
// unrounded until emission so rounding error does not compound.
type bucket struct {
	periodo         string
	claseUso        int
	numeroUsuarios  int
	numeroMedidores int
	totalConsumo    float64
	totalFacturado  float64
	totalRecaudo    float64
	tarifaSum       float64
	tarifaCount     int

	// Annual mode only: per-calendar-month user and meter counts,
	// averaged at emission over the months that actually had records.
	usuariosPorMes  map[string]int
	medidoresPorMes map[string]int
}

// Aggregate groups records into (period, usage class) buckets and
// emits one sorted row per bucket. Monthly mode buckets by MM-YYYY,
// annual mode by YYYY; annual user and meter counts are the rounded
// mean of the per-month counts across months with data, not a sum and
// not a division by 12. An empty input yields an empty (non-nil)
// result.
func (a *Aggregator) Aggregate(ctx context.Context, records []domain.CanonicalRecord, mode domain.ReportMode) []domain.ReportRow {
	buckets := make(map[string]*bucket)
	var order []string

	for _, rec := range records {
		periodo := periodKey(rec.Date, mode)
		key := periodo + "_" + strconv.Itoa(rec.UsageClass)

		b, ok := buckets[key]
		if !ok {
			b = &bucket{periodo: periodo, claseUso: rec.UsageClass}
			if mode == domain.ReportModeAnnual {
				b.usuariosPorMes = make(map[string]int)
				b.medidoresPorMes = make(map[string]int)
			}
			buckets[key] = b
			order = append(order, key)
		}

		b.numeroUsuarios++
		if rec.MeterFlag == 1 {
			b.numeroMedidores++
		}
		b.totalConsumo += rec.Consumption
		b.totalFacturado += rec.BilledTotal
		b.totalRecaudo += rec.CollectedTotal
		if a.service == domain.ServiceAseo && rec.Tariff > 0 {
			b.tarifaSum += rec.Tariff
			b.tarifaCount++
		}

		if mode == domain.ReportModeAnnual {
			month := monthOf(rec.Date)
			b.usuariosPorMes[month]++
			if rec.MeterFlag == 1 {
				b.medidoresPorMes[month]++
			}
		}
	}

	rows := make([]domain.ReportRow, 0, len(buckets))
	for _, key := range order {
		rows = append(rows, a.emit(buckets[key], mode))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Periodo != rows[j].Periodo {
			return rows[i].Periodo < rows[j].Periodo
		}
		return rows[i].ClaseUso < rows[j].ClaseUso
	})

	a.logger.DebugContext(ctx, "aggregation pass complete",
		slog.String("mode", string(mode)),
		slog.Int("records", len(records)),
		slog.Int("rows", len(rows)))
	return rows
}

// emit materializes one bucket into its report row, applying the
// annual monthly-average replacement and the 2-decimal rounding.
func (a *Aggregator) emit(b *bucket, mode domain.ReportMode) domain.ReportRow {
	usuarios := b.numeroUsuarios
	medidores := b.numeroMedidores

	if mode == domain.ReportModeAnnual && len(b.usuariosPorMes) > 0 {
		meses := float64(len(b.usuariosPorMes))
		var totalUsuarios, totalMedidores int
		for _, c := range b.usuariosPorMes {
			totalUsuarios += c
		}
		for _, c := range b.medidoresPorMes {
			totalMedidores += c
		}
		usuarios = int(math.Round(float64(totalUsuarios) / meses))
		medidores = int(math.Round(float64(totalMedidores) / meses))
	}

	row := domain.ReportRow{
		Periodo:         b.periodo,
		ClaseUso:        b.claseUso,
		NumeroUsuarios:  usuarios,
		NumeroMedidores: medidores,
	}
	if a.service == domain.ServiceAseo {
		if b.tarifaCount > 0 {
			row.Tarifa = round2(b.tarifaSum / float64(b.tarifaCount))
		}
		return row
	}
	row.TotalConsumo = round2(b.totalConsumo)
	row.TotalFacturado = round2(b.totalFacturado)
	row.TotalRecaudo = round2(b.totalRecaudo)
	return row
}

// periodKey derives the bucket period from a DD-MM-YYYY date. A date
// that does not split into three parts yields an empty period so the
// record still counts toward a bucket instead of being dropped.
func periodKey(date string, mode domain.ReportMode) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ""
	}
	if mode == domain.ReportModeAnnual {
		return parts[2]
	}
	return parts[1] + "-" + parts[2]
}

// monthOf extracts the calendar month (MM) from a DD-MM-YYYY date.
func monthOf(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
