package duty

import "strings"

// Unspecified local exibido quando a origem não informa nenhum
const Unspecified = "Não informado"

// LocationCatalog catálogo oficial de locais de estágio
type LocationCatalog struct {
	labels []string
	byKey  map[string]string
}

// NewLocationCatalog monta o catálogo; rótulos que se normalizam igual são mantidos uma vez
func NewLocationCatalog(labels []string) *LocationCatalog {
	c := &LocationCatalog{byKey: make(map[string]string, len(labels))}
	for _, l := range labels {
		k := Fold(l)
		if k == "" {
			continue
		}
		if _, dup := c.byKey[k]; dup {
			continue
		}
		c.byKey[k] = l
		c.labels = append(c.labels, l)
	}
	return c
}

// Labels rótulos oficiais na ordem do catálogo
func (c *LocationCatalog) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Match rótulo oficial correspondente a s, ignorando caixa, acentos e pontuação
func (c *LocationCatalog) Match(s string) (string, bool) {
	l, ok := c.byKey[Fold(s)]
	return l, ok
}

var headquarters = map[string]bool{
	"qcg":                   true,
	"quarteldocomandogeral": true,
}

// IsHeadquartersOrEmpty local ausente ou equivalente ao QCG, que a escala usa como padrão
func IsHeadquartersOrEmpty(s string) bool {
	k := Fold(s)
	return k == "" || headquarters[k] || strings.EqualFold(strings.TrimSpace(s), Unspecified)
}
