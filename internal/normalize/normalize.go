// Package normalize turns raw export rows into canonical billing
// records by combining the schema registry's column resolution with
// the per-field coercers.
package normalize

import (
	"log/slog"

	"github.com/Ing-Eduardo-E/csv-processor/internal/coerce"
	"github.com/Ing-Eduardo-E/csv-processor/internal/schema"
	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// Normalizer converts raw rows of one service's export file into
// canonical records. It is stateless apart from the resolved column
// plan, so one Normalizer can process any number of rows.
type Normalizer struct {
	schema *schema.ServiceSchema
	logger *slog.Logger
}

// New creates a Normalizer for the given service type.
func New(service domain.ServiceType, logger *slog.Logger) (*Normalizer, error) {
	s, err := schema.Lookup(service)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		schema: s,
		logger: logger.With(slog.String("component", "normalizer"), slog.String("service", string(service))),
	}, nil
}

// columnPlan is the per-file resolution of schema source columns to
// the headers actually present. Unresolved columns keep ok=false and
// leave their target field at its zero default.
type columnPlan struct {
	spec   schema.ColumnSpec
	header string
	ok     bool
}

// plan resolves every mapped column once against the file headers.
func (n *Normalizer) plan(headers []string) []columnPlan {
	plans := make([]columnPlan, 0, len(n.schema.Columns))
	for _, spec := range n.schema.Columns {
		header, ok := schema.Resolve(spec.Source, headers)
		if !ok {
			n.logger.Debug("source column not resolved",
				slog.String("column", spec.Source))
		}
		plans = append(plans, columnPlan{spec: spec, header: header, ok: ok})
	}
	return plans
}

// Normalize converts one raw row into a canonical record. Every
// canonical field is present on the result: unresolved columns and
// missing cells leave the explicit zero/empty default. Pure: the input
// row is not modified and no state is kept between calls.
func (n *Normalizer) Normalize(row domain.RawRow, headers []string) domain.CanonicalRecord {
	return n.apply(n.plan(headers), row)
}

// NormalizeAll converts all rows, preserving their order.
func (n *Normalizer) NormalizeAll(rows []domain.RawRow, headers []string) []domain.CanonicalRecord {
	plans := n.plan(headers)
	records := make([]domain.CanonicalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, n.apply(plans, row))
	}
	n.logger.Debug("normalized rows", slog.Int("count", len(records)))
	return records
}

func (n *Normalizer) apply(plans []columnPlan, row domain.RawRow) domain.CanonicalRecord {
	var rec domain.CanonicalRecord
	for _, p := range plans {
		if !p.ok {
			continue
		}
		raw, present := row[p.header]
		if !present {
			continue
		}
		switch p.spec.Role {
		case schema.RoleDate:
			rec.Date = coerce.FormatDate(raw)
		case schema.RoleUsageClass:
			rec.UsageClass = coerce.UsageClass(raw)
		case schema.RoleMeterStatus:
			rec.MeterFlag = coerce.MeterStatus(raw)
		case schema.RoleAforoFlag:
			rec.MeterFlag = coerce.AforoFlag(raw)
		case schema.RoleNumeric:
			v := coerce.ParseNumber(raw)
			switch p.spec.Target {
			case schema.FieldConsumo:
				rec.Consumption = v
			case schema.FieldTotalFacturado:
				rec.BilledTotal = v
			case schema.FieldTotalRecaudo:
				rec.CollectedTotal = v
			}
		case schema.RoleTariff:
			rec.Tariff = coerce.ParseNumber(raw)
		}
	}
	return rec
}
