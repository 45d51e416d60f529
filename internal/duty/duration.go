package duty

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// Window janela de horário "HH:MM" → "HH:MM"; End pode ser no dia seguinte
type Window struct {
	Start string
	End   string
}

// DurationInput entrada do cálculo de horas
type DurationInput struct {
	Type     Type
	Date     time.Time
	Start    string   // opcional
	End      string   // opcional
	Explicit *float64 // duração informada manualmente, em horas
	Holiday  bool
}

// IsWeekend sábado ou domingo
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DefaultWindow janela padrão do tipo para a data
func DefaultWindow(t Type, date time.Time, holiday bool) Window {
	switch t {
	case TypeGuardCommander:
		if IsWeekend(date) || holiday {
			return Window{Start: "06:30", End: "06:30"}
		}
		return Window{Start: "20:00", End: "06:30"}
	case TypeInternship:
		if date.Weekday() == time.Saturday {
			return Window{Start: "08:00", End: "08:00"}
		}
		return Window{Start: "08:00", End: "20:00"}
	case TypeDiverse:
		return Window{Start: "08:00", End: "12:00"}
	}
	return Window{}
}

// ComputeHours horas trabalhadas conforme o tipo, a data e os horários informados.
// Tipos contados por ocorrência retornam 0; quem agrega deve contá-los como unidades.
func ComputeHours(in DurationInput) float64 {
	switch in.Type {
	case TypeGuardCommander:
		if in.Explicit != nil {
			return nonNegative(*in.Explicit)
		}
		if IsWeekend(in.Date) || in.Holiday {
			return 24
		}
		return 11

	case TypeInternship:
		return internshipHours(in)

	case TypeDiverse:
		if in.Explicit != nil {
			return nonNegative(*in.Explicit)
		}
		h, ok := WallClockHours(in.Start, in.End)
		if !ok {
			return 0
		}
		return h

	case TypeStandBy, TypeCleaning, TypeMaintenance, TypeBar:
		return 0
	}

	if in.Explicit != nil {
		return nonNegative(*in.Explicit)
	}
	return 0
}

// Estágio tem dois caminhos: em feriado ou com horário diferente do padrão a duração
// vem do relógio; caso contrário vale a duração explícita ou o padrão do dia.
func internshipHours(in DurationInput) float64 {
	def := DefaultWindow(TypeInternship, in.Date, false)

	fallback := 12.0
	if in.Date.Weekday() == time.Saturday {
		fallback = 24
	}

	hasTimes := in.Start != "" && in.End != ""
	custom := hasTimes && (!sameClock(in.Start, def.Start) || !sameClock(in.End, def.End))

	if in.Holiday || custom {
		start, end := def.Start, def.End
		if hasTimes {
			start, end = in.Start, in.End
		}
		if h, ok := WallClockHours(start, end); ok {
			return h
		}
	}

	if in.Explicit != nil {
		return nonNegative(*in.Explicit)
	}
	return fallback
}

// WallClockHours diferença end-start em horas; soma 24h uma única vez quando não positiva.
// Se ainda assim ficar negativa, retorna 0.
func WallClockHours(start, end string) (float64, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, false
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, false
	}

	diff := e - s
	if diff <= 0 {
		diff += minutesPerDay
	}
	if diff < 0 {
		diff = 0
	}
	return float64(diff) / 60, true
}

// ParseClock "HH:MM" ou "HH:MM:SS" em minutos desde a meia-noite
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	if h == 24 && m != 0 {
		return 0, fmt.Errorf("horário inválido %q", s)
	}
	return h*60 + m, nil
}

func sameClock(a, b string) bool {
	x, errA := ParseClock(a)
	y, errB := ParseClock(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return x%minutesPerDay == y%minutesPerDay
}

func nonNegative(h float64) float64 {
	if h < 0 {
		return 0
	}
	return h
}
