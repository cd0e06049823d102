package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

func TestAggregate_Monthly(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	records := []domain.CanonicalRecord{
		{Date: "05-01-2024", UsageClass: 1, MeterFlag: 1, Consumption: 10, BilledTotal: 50000, CollectedTotal: 50000},
		{Date: "20-01-2024", UsageClass: 1, MeterFlag: 0, Consumption: 5, BilledTotal: 25000, CollectedTotal: 20000},
	}

	rows := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ReportRow{
		Periodo:         "01-2024",
		ClaseUso:        1,
		NumeroUsuarios:  2,
		NumeroMedidores: 1,
		TotalConsumo:    15,
		TotalFacturado:  75000,
		TotalRecaudo:    70000,
	}, rows[0])
}

func TestAggregate_AnnualAveragesOverMonthsWithData(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	// Two January records, one February record: the annual user count
	// is the mean over the two months with data, not a sum and not a
	// division by twelve.
	records := []domain.CanonicalRecord{
		{Date: "05-01-2024", UsageClass: 1, MeterFlag: 1, Consumption: 10},
		{Date: "20-01-2024", UsageClass: 1, MeterFlag: 1, Consumption: 5},
		{Date: "10-02-2024", UsageClass: 1, MeterFlag: 1, Consumption: 7},
	}

	rows := a.Aggregate(context.Background(), records, domain.ReportModeAnnual)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024", rows[0].Periodo)
	assert.Equal(t, 2, rows[0].NumeroUsuarios)
	assert.Equal(t, 2, rows[0].NumeroMedidores)
	assert.InDelta(t, 22, rows[0].TotalConsumo, 1e-9)
}

func TestAggregate_SortOrder(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	records := []domain.CanonicalRecord{
		{Date: "10-02-2024", UsageClass: 3},
		{Date: "15-01-2024", UsageClass: 1},
		{Date: "05-01-2024", UsageClass: 3},
	}

	rows := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	require.Len(t, rows, 3)
	assert.Equal(t, "01-2024", rows[0].Periodo)
	assert.Equal(t, 1, rows[0].ClaseUso)
	assert.Equal(t, "01-2024", rows[1].Periodo)
	assert.Equal(t, 3, rows[1].ClaseUso)
	assert.Equal(t, "02-2024", rows[2].Periodo)
	assert.Equal(t, 3, rows[2].ClaseUso)
}

func TestAggregate_Idempotent(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	records := []domain.CanonicalRecord{
		{Date: "05-01-2024", UsageClass: 1, MeterFlag: 1, Consumption: 10.333, BilledTotal: 100.005},
		{Date: "20-01-2024", UsageClass: 2, MeterFlag: 0, Consumption: 5.1},
	}

	first := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	second := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	assert.Equal(t, first, second)
}

func TestAggregate_Empty(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	rows := a.Aggregate(context.Background(), nil, domain.ReportModeMonthly)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAggregate_RoundsAtEmissionOnly(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	// Each addend carries a third of a cent; summing unrounded then
	// rounding once keeps the total exact.
	records := []domain.CanonicalRecord{
		{Date: "05-01-2024", UsageClass: 1, BilledTotal: 0.333},
		{Date: "06-01-2024", UsageClass: 1, BilledTotal: 0.333},
		{Date: "07-01-2024", UsageClass: 1, BilledTotal: 0.334},
	}

	rows := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	require.Len(t, rows, 1)
	assert.InDelta(t, 1.0, rows[0].TotalFacturado, 1e-9)
}

func TestAggregate_AseoTariffMean(t *testing.T) {
	a := NewAggregator(domain.ServiceAseo, nil)
	records := []domain.CanonicalRecord{
		{Date: "05-01-2024", UsageClass: 2, Tariff: 10000},
		{Date: "06-01-2024", UsageClass: 2, Tariff: 15000},
		// Zero tariffs are not sampled.
		{Date: "07-01-2024", UsageClass: 2, Tariff: 0},
	}

	rows := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].NumeroUsuarios)
	assert.InDelta(t, 12500, rows[0].Tarifa, 1e-9)
	assert.Zero(t, rows[0].TotalConsumo)
	assert.Zero(t, rows[0].TotalFacturado)
	assert.Zero(t, rows[0].TotalRecaudo)
}

func TestAggregate_MalformedDateStillCounts(t *testing.T) {
	a := NewAggregator(domain.ServiceAcueducto, nil)
	records := []domain.CanonicalRecord{
		{Date: "", UsageClass: 1, Consumption: 3},
		{Date: "sin fecha", UsageClass: 1, Consumption: 4},
	}

	rows := a.Aggregate(context.Background(), records, domain.ReportModeMonthly)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Periodo)
	assert.Equal(t, 2, rows[0].NumeroUsuarios)
	assert.InDelta(t, 7, rows[0].TotalConsumo, 1e-9)
}
