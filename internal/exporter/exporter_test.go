package exporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

func sampleReport(service domain.ServiceType) *domain.Report {
	return &domain.Report{
		ID:          "test",
		ServiceType: service,
		Mode:        domain.ReportModeMonthly,
		RecordCount: 2,
		Rows: []domain.ReportRow{
			{Periodo: "01-2024", ClaseUso: 1, NumeroUsuarios: 2, NumeroMedidores: 1, TotalConsumo: 15, TotalFacturado: 75000, TotalRecaudo: 70000, Tarifa: 12500.5},
		},
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"Periodo", "Clase de Uso", "Usuarios", "Medidores/Aforo", "Total Consumo/Vertimiento", "Total Facturado", "Total Recaudo"},
		Headers(domain.ServiceAcueducto))
	assert.Equal(t,
		[]string{"Periodo", "Estrato", "Usuarios", "Tarifa ($)"},
		Headers(domain.ServiceAseo))
}

func TestFormatRows(t *testing.T) {
	report := sampleReport(domain.ServiceAcueducto)

	rows := FormatRows(report.ServiceType, report.Rows)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"01-2024", "1", "2", "1", "15.00", "75000.00", "70000.00"}, rows[0])
}

func TestFormatRows_Aseo(t *testing.T) {
	report := sampleReport(domain.ServiceAseo)

	rows := FormatRows(report.ServiceType, report.Rows)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"01-2024", "1", "2", "12500.50"}, rows[0])
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "reporte_acueducto_monthly_2024-03-01",
		FileName(domain.ServiceAcueducto, domain.ReportModeMonthly, now))
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(nil)
	require.NoError(t, w.Write(&buf, sampleReport(domain.ServiceAcueducto)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "expected UTF-8 BOM")
	text := string(out[3:])
	assert.Contains(t, text, "Periodo,Clase de Uso,Usuarios")
	assert.Contains(t, text, "01-2024,1,2,1,15.00,75000.00,70000.00")
}

func TestXLSXWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewXLSXWriter(nil)
	require.NoError(t, w.Write(&buf, sampleReport(domain.ServiceAseo)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reporte")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Periodo", "Estrato", "Usuarios", "Tarifa ($)"}, rows[0])
	assert.Equal(t, []string{"01-2024", "1", "2", "12500.50"}, rows[1])
}
