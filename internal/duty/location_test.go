package duty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"1°BBM":                "1bbm",
		"1º BBM":               "1bbm",
		" 1 bbm ":              "1bbm",
		"Manutenção":           "manutencao",
		"Comandante da Guarda": "comandantedaguarda",
		"Q.C.G.":               "qcg",
		"":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Fold(in), in)
	}
}

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"Estagio":         TypeInternship,
		"ESTÁGIO":         TypeInternship,
		"Cmt da Guarda":   TypeGuardCommander,
		"Diversos":        TypeDiverse,
		"serviço diverso": TypeDiverse,
		"Limpeza":         TypeCleaning,
		"manutenção":      TypeMaintenance,
	}
	for in, want := range cases {
		got, ok := ParseType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseType("Plantão")
	assert.False(t, ok)
	assert.False(t, Type("Plantão").Known())
	assert.Equal(t, len(Catalog), Type("Plantão").Priority())
	assert.Less(t, TypeGuardCommander.Priority(), TypeBar.Priority())
}

func TestLocationCatalog(t *testing.T) {
	c := NewLocationCatalog([]string{"1°BBM", "1º BBM", "COBOM", "QCG", ""})
	assert.Equal(t, []string{"1°BBM", "COBOM", "QCG"}, c.Labels())

	label, ok := c.Match("1 bbm")
	assert.True(t, ok)
	assert.Equal(t, "1°BBM", label)

	label, ok = c.Match("cobom.")
	assert.True(t, ok)
	assert.Equal(t, "COBOM", label)

	_, ok = c.Match("10°BBM")
	assert.False(t, ok)

	labels := c.Labels()
	labels[0] = "alterado"
	assert.Equal(t, "1°BBM", c.Labels()[0])
}

func TestIsHeadquartersOrEmpty(t *testing.T) {
	for _, s := range []string{"", "  ", "QCG", "q.c.g", "Quartel do Comando Geral", Unspecified} {
		assert.True(t, IsHeadquartersOrEmpty(s), s)
	}
	for _, s := range []string{"1°BBM", "COBOM"} {
		assert.False(t, IsHeadquartersOrEmpty(s), s)
	}
}
