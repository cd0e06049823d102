package domain

import (
	"time"
)

// ServiceType identifies the public-utility service a billing export
// belongs to. The keys match the values used by the regulatory export
// files (SUI terminology), so they are kept in Spanish.
type ServiceType string

const (
	// ServiceAcueducto is water supply.
	ServiceAcueducto ServiceType = "acueducto"
	// ServiceAlcantarillado is sewage.
	ServiceAlcantarillado ServiceType = "alcantarillado"
	// ServiceAseo is waste collection.
	ServiceAseo ServiceType = "aseo"
)

// Valid reports whether s is a known service type.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceAcueducto, ServiceAlcantarillado, ServiceAseo:
		return true
	}
	return false
}

// ReportMode selects the aggregation granularity.
type ReportMode string

const (
	ReportModeMonthly ReportMode = "monthly"
	ReportModeAnnual  ReportMode = "annual"
)

// Valid reports whether m is a known report mode.
func (m ReportMode) Valid() bool {
	return m == ReportModeMonthly || m == ReportModeAnnual
}

// RawRow is one data row of an uploaded export file, keyed by the
// original header text. Cell values are the raw strings the reader
// produced; missing cells are simply absent keys.
type RawRow map[string]string

// CanonicalRecord is the normalized form of one billing row. Every
// field always has a value: an unresolved source column or a missing
// cell leaves the explicit zero value rather than an undefined field.
type CanonicalRecord struct {
	// Date is zero-padded DD-MM-YYYY, or the raw cell text when the
	// date coercer could not recognize the layout, or "" when blank.
	Date string `json:"fecha"`
	// UsageClass is the customer/property usage class code.
	UsageClass int `json:"clase_uso"`
	// MeterFlag is 1 when the account has a functioning meter (water)
	// or is billed by aforo (sewage), otherwise 0.
	MeterFlag int `json:"medidor"`
	// Consumption is period consumption/discharge in cubic meters.
	Consumption float64 `json:"consumo"`
	// BilledTotal is the total billed amount for the period.
	BilledTotal float64 `json:"total_facturado"`
	// CollectedTotal is the payments received during the period.
	CollectedTotal float64 `json:"total_recaudo"`
	// Tariff is the applied tariff; only waste-collection rows carry
	// it, the other services leave it at 0.
	Tariff float64 `json:"tarifa,omitempty"`
}

// ReportRow is one emitted aggregate, keyed by (period, usage class).
// The JSON field names are the downstream export contract and must not
// change. Water/sewage reports carry the three totals; waste reports
// carry Tariff instead.
type ReportRow struct {
	Periodo         string  `json:"periodo"`
	ClaseUso        int     `json:"claseUso"`
	NumeroUsuarios  int     `json:"numeroUsuarios"`
	NumeroMedidores int     `json:"numeroMedidores"`
	TotalConsumo    float64 `json:"totalConsumo"`
	TotalFacturado  float64 `json:"totalFacturado"`
	TotalRecaudo    float64 `json:"totalRecaudo"`
	Tarifa          float64 `json:"tarifa,omitempty"`
}

// Report is a fully aggregated report for one uploaded file.
type Report struct {
	ID          string      `json:"id"`
	ServiceType ServiceType `json:"service_type"`
	Mode        ReportMode  `json:"mode"`
	RecordCount int         `json:"record_count"`
	Rows        []ReportRow `json:"rows"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// ColumnValidation is the outcome of checking a file's headers against
// a service schema. MissingColumns lists required source columns with
// no match; for an unknown service type it carries a single sentinel
// message instead of column names.
type ColumnValidation struct {
	Valid            bool     `json:"valid"`
	MissingColumns   []string `json:"missing_columns,omitempty"`
	AvailableColumns []string `json:"available_columns,omitempty"`
}
