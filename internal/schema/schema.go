package schema

import (
	"fmt"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// FieldRole tells the normalizer which coercer applies to a mapped
// source column.
type FieldRole int

const (
	RolePassthrough FieldRole = iota
	RoleDate
	RoleUsageClass
	RoleMeterStatus
	RoleAforoFlag
	RoleNumeric
	RoleTariff
)

// ColumnSpec binds one source column of an export file to a canonical
// field and the coercer that produces it.
type ColumnSpec struct {
	Source   string
	Target   string
	Role     FieldRole
	Required bool
}

// ServiceSchema describes one service variant: the source columns its
// export files must carry and how they map onto the canonical fields.
// Schemas are immutable and registered at process start.
type ServiceSchema struct {
	Type    domain.ServiceType
	Name    string
	Columns []ColumnSpec
}

// Canonical field names shared by every service schema.
const (
	FieldFecha          = "Fecha"
	FieldClaseUso       = "Clase de Uso"
	FieldMedidor        = "Medidor"
	FieldConsumo        = "Consumo"
	FieldTotalFacturado = "Total Facturado"
	FieldTotalRecaudo   = "Total Recaudo"
	FieldTarifa         = "Tarifa"
)

// RequiredColumns returns the ordered list of required source columns.
func (s *ServiceSchema) RequiredColumns() []string {
	var cols []string
	for _, c := range s.Columns {
		if c.Required {
			cols = append(cols, c.Source)
		}
	}
	return cols
}

// registry holds the supported service schemas. The column vocabulary
// mirrors the regulatory export layouts, including their historical
// misspellings ("REPOPRTE", "PERIOD"), which is what the files really
// contain.
var registry = map[domain.ServiceType]*ServiceSchema{
	domain.ServiceAcueducto: {
		Type: domain.ServiceAcueducto,
		Name: "Acueducto",
		Columns: []ColumnSpec{
			{Source: "FECHA DE EXPEDICIÓN DE LA FACTURA", Target: FieldFecha, Role: RoleDate, Required: true},
			{Source: "CÓDIGO CLASE DE USO", Target: FieldClaseUso, Role: RoleUsageClass, Required: true},
			{Source: "ESTADO DE MEDIDOR", Target: FieldMedidor, Role: RoleMeterStatus, Required: true},
			{Source: "CONSUMO DEL PERÍODO EN METROS CÚBICOS", Target: FieldConsumo, Role: RoleNumeric, Required: true},
			{Source: "VALOR TOTAL FACTURADO", Target: FieldTotalFacturado, Role: RoleNumeric, Required: true},
			{Source: "PAGOS DEL USUARIO RECIBIDOS DURANTE EL MES DE REPOPRTE", Target: FieldTotalRecaudo, Role: RoleNumeric, Required: true},
		},
	},
	domain.ServiceAlcantarillado: {
		Type: domain.ServiceAlcantarillado,
		Name: "Alcantarillado",
		Columns: []ColumnSpec{
			{Source: "FECHA DE EXPEDICIÓN DE LA FACTURA", Target: FieldFecha, Role: RoleDate, Required: true},
			{Source: "CÓDIGO CLASE DE USO", Target: FieldClaseUso, Role: RoleUsageClass, Required: true},
			{Source: "USUARIO FACTURADO CON AFORO", Target: FieldMedidor, Role: RoleAforoFlag, Required: true},
			{Source: "VERTIMIENTO DEL PERIOD EN METROS CUBICOS", Target: FieldConsumo, Role: RoleNumeric, Required: true},
			{Source: "VALOR TOTAL FACTURADO", Target: FieldTotalFacturado, Role: RoleNumeric, Required: true},
			{Source: "PAGOS DEL CLIENTE DURANTE EL PERÍODO FACTURADO", Target: FieldTotalRecaudo, Role: RoleNumeric, Required: true},
		},
	},
	domain.ServiceAseo: {
		Type: domain.ServiceAseo,
		Name: "Aseo",
		Columns: []ColumnSpec{
			{Source: "Fecha de expedición de la factura", Target: FieldFecha, Role: RoleDate, Required: true},
			{Source: "Código de clase o uso", Target: FieldClaseUso, Role: RoleUsageClass, Required: true},
			// Tariff column is optional: older aseo exports omit it.
			{Source: "Tarifa aplicada", Target: FieldTarifa, Role: RoleTariff},
		},
	},
}

// Lookup returns the schema registered for the given service type.
func Lookup(service domain.ServiceType) (*ServiceSchema, error) {
	s, ok := registry[service]
	if !ok {
		return nil, fmt.Errorf("unknown service type %q", service)
	}
	return s, nil
}

// Types returns the registered service types.
func Types() []domain.ServiceType {
	return []domain.ServiceType{
		domain.ServiceAcueducto,
		domain.ServiceAlcantarillado,
		domain.ServiceAseo,
	}
}
