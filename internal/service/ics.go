package service

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

// ── calendário .ics ────────────────────────────────────────────
//
// Importação: cada VEVENT vira um feriado na data civil de DTSTART.
// Eventos de vários dias (DTEND exclusivo, como em VALUE=DATE) geram um feriado por dia.
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024
	icsFetchTimeout = 30 * time.Second
	icsMaxSpanDays  = 31
)

// FetchICSContent baixa um calendário; webcal:// vira https://
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("falha ao baixar calendário: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("falha ao baixar calendário: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseHolidayICS lê os eventos do calendário como feriados, um por data, em ordem cronológica
func ParseHolidayICS(r io.Reader, loc *time.Location) ([]model.Holiday, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(r, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("calendário .ics inválido: %w", err)
	}

	byDate := make(map[string]model.Holiday)
	for _, evt := range cal.Events() {
		summary := ""
		if p := evt.GetProperty(ics.ComponentPropertySummary); p != nil {
			summary = strings.TrimSpace(p.Value)
		}

		start, allDay, err := parseICSDate(evt, ics.ComponentPropertyDtStart, loc)
		if err != nil {
			continue
		}
		days := 1
		if end, _, err := parseICSDate(evt, ics.ComponentPropertyDtEnd, loc); err == nil && allDay {
			if n := int(end.Sub(start).Hours() / 24); n > 1 {
				days = n
			}
		}
		if days > icsMaxSpanDays {
			days = icsMaxSpanDays
		}

		for i := 0; i < days; i++ {
			d := start.AddDate(0, 0, i)
			key := d.Format(model.DateLayout)
			if _, dup := byDate[key]; dup {
				continue
			}
			byDate[key] = model.Holiday{Date: d, Description: summary}
		}
	}

	result := make([]model.Holiday, 0, len(byDate))
	for _, h := range byDate {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// parseICSDate data civil (meia-noite UTC) do valor; allDay quando o valor não tem horário
func parseICSDate(evt *ics.VEvent, prop ics.ComponentProperty, loc *time.Location) (time.Time, bool, error) {
	p := evt.GetProperty(prop)
	if p == nil {
		return time.Time{}, false, fmt.Errorf("propriedade %s ausente", prop)
	}
	val := strings.TrimSpace(p.Value)

	if t, err := time.Parse("20060102", val); err == nil {
		return model.Day(t), true, nil
	}

	tz := loc
	for k, v := range p.ICalParameters {
		if strings.EqualFold(k, "TZID") && len(v) > 0 {
			if l, err := time.LoadLocation(v[0]); err == nil {
				tz = l
			}
		}
	}
	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return model.Day(t.In(loc)), false, nil
	}
	if t, err := time.ParseInLocation("20060102T150405", val, tz); err == nil {
		return model.Day(t.In(loc)), false, nil
	}
	return time.Time{}, false, fmt.Errorf("data inválida: %s", val)
}
