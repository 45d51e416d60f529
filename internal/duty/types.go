// Package duty reconcilia as três fontes de serviço (escala, estágio e livro de horas)
// numa linha do tempo única e calcula os totais derivados dela.
//
// Tudo aqui é puro: recebe um Snapshot já carregado do armazenamento e devolve valores.
// Nenhuma função faz I/O ou guarda estado entre chamadas.
package duty

// Type tipo de serviço (catálogo fechado)
type Type string

const (
	TypeGuardCommander Type = "Comandante da Guarda"
	TypeInternship     Type = "Estágio"
	TypeDiverse        Type = "Serviço Diverso"
	TypeStandBy        Type = "Sobreaviso"
	TypeCleaning       Type = "Faxina"
	TypeMaintenance    Type = "Manutenção"
	TypeBar            Type = "Bar"
)

// Catalog ordem de prioridade usada em listas e no calendário
var Catalog = []Type{
	TypeGuardCommander,
	TypeInternship,
	TypeDiverse,
	TypeStandBy,
	TypeCleaning,
	TypeMaintenance,
	TypeBar,
}

var typeAliases = map[string]Type{
	"comandantedaguarda": TypeGuardCommander,
	"comandantedeguarda": TypeGuardCommander,
	"comandanteguarda":   TypeGuardCommander,
	"cmtdaguarda":        TypeGuardCommander,
	"cmtdeguarda":        TypeGuardCommander,
	"cmtguarda":          TypeGuardCommander,
	"estagio":            TypeInternship,
	"estagios":           TypeInternship,
	"servicodiverso":     TypeDiverse,
	"servicosdiversos":   TypeDiverse,
	"diverso":            TypeDiverse,
	"diversos":           TypeDiverse,
	"sobreaviso":         TypeStandBy,
	"faxina":             TypeCleaning,
	"limpeza":            TypeCleaning,
	"manutencao":         TypeMaintenance,
	"bar":                TypeBar,
}

// ParseType reconhece o texto livre gravado na escala, sem diferenciar acentos e caixa
func ParseType(s string) (Type, bool) {
	t, ok := typeAliases[Fold(s)]
	return t, ok
}

// QuantityBased serviços contados por ocorrência, não por horas
func (t Type) QuantityBased() bool {
	switch t {
	case TypeStandBy, TypeCleaning, TypeMaintenance, TypeBar:
		return true
	}
	return false
}

// Known pertence ao catálogo
func (t Type) Known() bool {
	_, ok := priority[t]
	return ok
}

var priority = func() map[Type]int {
	m := make(map[Type]int, len(Catalog))
	for i, t := range Catalog {
		m[t] = i
	}
	return m
}()

// Priority posição no catálogo; tipos desconhecidos vão para o fim
func (t Type) Priority() int {
	if p, ok := priority[t]; ok {
		return p
	}
	return len(Catalog)
}
