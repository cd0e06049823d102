package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "year first dash", in: "2024-03-05", want: "05-03-2024"},
		{name: "day first slash", in: "05/03/2024", want: "05-03-2024"},
		{name: "day first dash", in: "05-03-2024", want: "05-03-2024"},
		{name: "year first slash", in: "2024/03/05", want: "05-03-2024"},
		{name: "unpadded components", in: "5/3/2024", want: "05-03-2024"},
		{name: "blank", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "fallback layout", in: "05.01.2024", want: "05-01-2024"},
		{name: "unparseable passes through", in: "no es fecha", want: "no es fecha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestUsageClass(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "integer", in: "3", want: 3},
		{name: "padded", in: " 12 ", want: 12},
		{name: "float cell", in: "2.0", want: 2},
		{name: "blank", in: "", want: 0},
		{name: "non numeric", in: "residencial", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UsageClass(tt.in))
		})
	}
}

func TestMeterStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "installed", in: "INSTALADO", want: 1},
		{name: "not installed", in: "NO INSTALADO", want: 0},
		{name: "removed", in: "RETIRADO", want: 0},
		{name: "lowercase trimmed", in: "  instalado ", want: 1},
		{name: "installed inside sentence", in: "MEDIDOR INSTALADO EN PREDIO", want: 1},
		{name: "not installed inside sentence", in: "MEDIDOR NO INSTALADO EN PREDIO", want: 0},
		{name: "removed inside sentence", in: "MEDIDOR RETIRADO POR DAÑO", want: 0},
		{name: "other text assumes meter", in: "FUNCIONANDO", want: 1},
		{name: "blank means no meter", in: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeterStatus(tt.in))
		})
	}
}

func TestAforoFlag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "si", in: "SI", want: 1},
		{name: "si accented", in: "SÍ", want: 1},
		{name: "s", in: "s", want: 1},
		{name: "one", in: "1", want: 1},
		{name: "no", in: "NO", want: 0},
		{name: "n", in: "N", want: 0},
		{name: "zero", in: "0", want: 0},
		{name: "blank", in: "", want: 0},
		{name: "garbage", in: "tal vez", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AforoFlag(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "us grouping", in: "1,234.56", want: 1234.56},
		{name: "latin grouping", in: "1.234,56", want: 1234.56},
		{name: "comma thousands", in: "1,234", want: 1234},
		{name: "comma decimal", in: "12,5", want: 12.5},
		{name: "blank", in: "", want: 0},
		{name: "currency", in: "$ 45.00", want: 45.0},
		{name: "plain", in: "120.75", want: 120.75},
		{name: "integer", in: "45000", want: 45000},
		{name: "multiple thousands groups", in: "1,234,567", want: 1234567},
		{name: "thousands and decimal comma", in: "1.234.567,89", want: 1234567.89},
		{name: "garbage", in: "n/a", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseNumber(tt.in), 1e-9)
		})
	}
}
