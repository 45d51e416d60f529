package duty

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CategoryKind forma da categoria do livro de horas
type CategoryKind int

const (
	// KindUnknown não reconhecida; fica fora da linha do tempo e dos contadores
	KindUnknown CategoryKind = iota
	// KindHourLog "<Curso> - Registro de Horas": serviços diversos datados
	KindHourLog
	// KindManualTally "<Curso> - <Serviço>": contador manual legado
	KindManualTally
	// KindManualInternship "<Curso> - Estágio - <Local> - <N>h": contador manual por local e faixa
	KindManualInternship
)

// MarshalText serializa pelo nome
func (k CategoryKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k CategoryKind) String() string {
	switch k {
	case KindHourLog:
		return "hour_log"
	case KindManualTally:
		return "manual_tally"
	case KindManualInternship:
		return "manual_internship"
	}
	return "unknown"
}

const hourLogLabel = "Registro de Horas"

const categorySep = " - "

var tierPattern = regexp.MustCompile(`^(\d+)\s*[hH]$`)

// Category categoria estruturada do livro de horas
type Category struct {
	Kind      CategoryKind `json:"kind"`
	Program   string       `json:"program"`
	DutyLabel string       `json:"duty_label"`         // rótulo como gravado
	DutyType  Type         `json:"duty_type,omitempty"` // vazio quando o rótulo não pertence ao catálogo
	Location  string       `json:"location,omitempty"`  // só KindManualInternship
	Tier      int          `json:"tier,omitempty"`      // só KindManualInternship: 12 ou 24
}

// HourLogCategory categoria do registro de serviços diversos
func HourLogCategory(program string) Category {
	return Category{Kind: KindHourLog, Program: program, DutyLabel: hourLogLabel, DutyType: TypeDiverse}
}

// TallyCategory contador manual de um tipo de serviço
func TallyCategory(program string, t Type) Category {
	return Category{Kind: KindManualTally, Program: program, DutyLabel: string(t), DutyType: t}
}

// InternshipTallyCategory contador manual de estágio por local e faixa
func InternshipTallyCategory(program, location string, tier int) Category {
	return Category{
		Kind:      KindManualInternship,
		Program:   program,
		DutyLabel: string(TypeInternship),
		DutyType:  TypeInternship,
		Location:  location,
		Tier:      tier,
	}
}

// ParseCategory interpreta a categoria gravada no livro de horas
func ParseCategory(s string) Category {
	parts := splitCategory(s)
	if len(parts) < 2 || parts[0] == "" {
		return Category{Kind: KindUnknown, DutyLabel: strings.TrimSpace(s)}
	}
	program := parts[0]

	switch len(parts) {
	case 2:
		label := parts[1]
		if Fold(label) == Fold(hourLogLabel) {
			return HourLogCategory(program)
		}
		t, _ := ParseType(label)
		return Category{Kind: KindManualTally, Program: program, DutyLabel: label, DutyType: t}

	case 4:
		t, ok := ParseType(parts[1])
		m := tierPattern.FindStringSubmatch(parts[3])
		if !ok || t != TypeInternship || m == nil || parts[2] == "" {
			break
		}
		tier, err := strconv.Atoi(m[1])
		if err != nil || tier <= 0 {
			break
		}
		c := InternshipTallyCategory(program, parts[2], tier)
		c.DutyLabel = parts[1]
		return c
	}

	return Category{Kind: KindUnknown, Program: program, DutyLabel: strings.TrimSpace(s)}
}

// String formato canônico gravado no livro de horas
func (c Category) String() string {
	switch c.Kind {
	case KindHourLog:
		return c.Program + categorySep + hourLogLabel
	case KindManualTally:
		return c.Program + categorySep + c.label()
	case KindManualInternship:
		return strings.Join([]string{c.Program, c.label(), c.Location, fmt.Sprintf("%dh", c.Tier)}, categorySep)
	}
	return c.DutyLabel
}

func (c Category) label() string {
	if c.DutyType != "" {
		return string(c.DutyType)
	}
	return c.DutyLabel
}

func splitCategory(s string) []string {
	raw := strings.Split(s, categorySep)
	if len(raw) == 1 {
		raw = strings.Split(s, "-")
	}
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}
