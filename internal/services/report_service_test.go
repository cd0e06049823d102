package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ing-Eduardo-E/csv-processor/internal/reader"
	"github.com/Ing-Eduardo-E/csv-processor/internal/schema"
	"github.com/Ing-Eduardo-E/csv-processor/internal/shared/testutil"
	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

const acueductoCSV = "FECHA DE EXPEDICIÓN DE LA FACTURA,CÓDIGO CLASE DE USO,ESTADO DE MEDIDOR,CONSUMO DEL PERÍODO EN METROS CÚBICOS,VALOR TOTAL FACTURADO,PAGOS DEL USUARIO RECIBIDOS DURANTE EL MES DE REPOPRTE\n" +
	"05-01-2024,1,INSTALADO,10,50000,50000\n" +
	"20-01-2024,1,NO INSTALADO,5,25000,20000\n" +
	"10-02-2024,2,INSTALADO,8,40000,40000\n"

func TestReportService_OpenAndGenerate(t *testing.T) {
	logger, handler := testutil.NewLogger(t)
	svc := NewReportService(0, logger)
	ctx := context.Background()

	session, err := svc.Open(ctx, strings.NewReader(acueductoCSV), "export.csv", domain.ServiceAcueducto)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Len(t, session.Records, 3)
	assert.True(t, handler.ContainsMessage("session opened"))

	report, err := svc.Generate(ctx, session, domain.ReportModeMonthly)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceAcueducto, report.ServiceType)
	assert.Equal(t, 3, report.RecordCount)
	require.Len(t, report.Rows, 2)

	assert.Equal(t, "01-2024", report.Rows[0].Periodo)
	assert.Equal(t, 1, report.Rows[0].ClaseUso)
	assert.Equal(t, 2, report.Rows[0].NumeroUsuarios)
	assert.Equal(t, 1, report.Rows[0].NumeroMedidores)
	assert.InDelta(t, 15, report.Rows[0].TotalConsumo, 1e-9)
	assert.InDelta(t, 75000, report.Rows[0].TotalFacturado, 1e-9)
	assert.InDelta(t, 70000, report.Rows[0].TotalRecaudo, 1e-9)

	assert.Equal(t, "02-2024", report.Rows[1].Periodo)
	assert.Equal(t, 2, report.Rows[1].ClaseUso)
}

func TestReportService_SessionReaggregatesWithoutRereading(t *testing.T) {
	svc := NewReportService(0, nil)
	ctx := context.Background()

	session, err := svc.Open(ctx, strings.NewReader(acueductoCSV), "export.csv", domain.ServiceAcueducto)
	require.NoError(t, err)

	monthly, err := svc.Generate(ctx, session, domain.ReportModeMonthly)
	require.NoError(t, err)
	annual, err := svc.Generate(ctx, session, domain.ReportModeAnnual)
	require.NoError(t, err)

	assert.Len(t, monthly.Rows, 2)
	require.Len(t, annual.Rows, 2)
	assert.Equal(t, "2024", annual.Rows[0].Periodo)

	// Re-running the same mode yields the same rows.
	monthlyAgain, err := svc.Generate(ctx, session, domain.ReportModeMonthly)
	require.NoError(t, err)
	assert.Equal(t, monthly.Rows, monthlyAgain.Rows)
}

func TestReportService_MissingColumns(t *testing.T) {
	svc := NewReportService(0, nil)
	csvData := "FECHA DE EXPEDICIÓN DE LA FACTURA,CÓDIGO CLASE DE USO\n05-01-2024,1\n"

	_, err := svc.Open(context.Background(), strings.NewReader(csvData), "export.csv", domain.ServiceAcueducto)
	var vErr *ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Missing, 4)
	assert.Contains(t, vErr.Missing, "ESTADO DE MEDIDOR")
}

func TestReportService_UnknownService(t *testing.T) {
	svc := NewReportService(0, nil)
	csvData := "Fecha,Clase\n05-01-2024,1\n"

	_, err := svc.Open(context.Background(), strings.NewReader(csvData), "export.csv", domain.ServiceType("energia"))
	var vErr *ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{schema.MsgInvalidServiceType}, vErr.Missing)
}

func TestReportService_EmptyFile(t *testing.T) {
	svc := NewReportService(0, nil)

	_, err := svc.Open(context.Background(), strings.NewReader(""), "export.csv", domain.ServiceAcueducto)
	assert.ErrorIs(t, err, reader.ErrEmptyFile)
}

func TestReportService_InvalidMode(t *testing.T) {
	svc := NewReportService(0, nil)
	ctx := context.Background()

	session, err := svc.Open(ctx, strings.NewReader(acueductoCSV), "export.csv", domain.ServiceAcueducto)
	require.NoError(t, err)

	_, err = svc.Generate(ctx, session, domain.ReportMode("weekly"))
	assert.Error(t, err)
}
