package duty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
	}{
		{"CFO I - Registro de Horas", HourLogCategory("CFO I")},
		{"CFO I - registro de horas", HourLogCategory("CFO I")},
		{"CFO I - Sobreaviso", TallyCategory("CFO I", TypeStandBy)},
		{"CFO II - Faxina", TallyCategory("CFO II", TypeCleaning)},
		{"CFO I - Estágio - 1°BBM - 24h", InternshipTallyCategory("CFO I", "1°BBM", 24)},
		{"CFO I - Estágio - COBOM - 12H", InternshipTallyCategory("CFO I", "COBOM", 12)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseCategory(tc.raw), tc.raw)
	}
}

func TestParseCategory_TallyKeepsLabel(t *testing.T) {
	c := ParseCategory("CFO I - Manutencao")
	assert.Equal(t, KindManualTally, c.Kind)
	assert.Equal(t, TypeMaintenance, c.DutyType)
	assert.Equal(t, "Manutencao", c.DutyLabel)
	assert.Equal(t, "CFO I - Manutenção", c.String())

	other := ParseCategory("CFO I - Formatura")
	assert.Equal(t, KindManualTally, other.Kind)
	assert.Equal(t, Type(""), other.DutyType)
	assert.Equal(t, "CFO I - Formatura", other.String())
}

func TestParseCategory_Unknown(t *testing.T) {
	for _, raw := range []string{
		"",
		"Horas",
		"CFO I - Estágio - 1°BBM",
		"CFO I - Estágio - 1°BBM - vinte",
		"CFO I - Faxina - 1°BBM - 12h",
		"CFO I - Estágio -  - 12h",
		" - Sobreaviso",
	} {
		assert.Equal(t, KindUnknown, ParseCategory(raw).Kind, raw)
	}
}

func TestCategory_StringRoundTrip(t *testing.T) {
	for _, c := range []Category{
		HourLogCategory("CFO I"),
		TallyCategory("CFO I", TypeBar),
		InternshipTallyCategory("CFO I", "BOA", 12),
	} {
		assert.Equal(t, c, ParseCategory(c.String()), c.String())
	}
	assert.Equal(t, "CFO I - Estágio - 2°BBM - 24h", InternshipTallyCategory("CFO I", "2°BBM", 24).String())
}

func TestCategoryKind_MarshalText(t *testing.T) {
	b, err := KindManualInternship.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "manual_internship", string(b))
	assert.Equal(t, "unknown", CategoryKind(42).String())
}

func TestParseType_PrepositionVariants(t *testing.T) {
	for _, raw := range []string{"Comandante de Guarda", "Cmt de Guarda", "CMT DA GUARDA", "comandante guarda"} {
		got, ok := ParseType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, TypeGuardCommander, got, raw)
	}
	got, ok := ParseType("Estágios")
	assert.True(t, ok)
	assert.Equal(t, TypeInternship, got)

	c := ParseCategory("CFO I - Comandante de Guarda")
	assert.Equal(t, KindManualTally, c.Kind)
	assert.Equal(t, TypeGuardCommander, c.DutyType)
}
