package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	"github.com/azalim25/cfoescala-sub000/internal/repository"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

// ── validação comum (sempre antes de qualquer escrita) ──

func requireDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, pkgerrors.NewValidation(field, "data obrigatória")
	}
	d, err := model.ParseDay(s)
	if err != nil {
		return time.Time{}, pkgerrors.NewValidation(field, "data inválida, use AAAA-MM-DD")
	}
	return d, nil
}

// requireTimes início e fim devem vir juntos e em HH:MM
func requireTimes(start, end string) (string, string, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return "", "", nil
	}
	if start == "" {
		return "", "", pkgerrors.NewValidation("start_time", "informe o horário de início")
	}
	if end == "" {
		return "", "", pkgerrors.NewValidation("end_time", "informe o horário de término")
	}
	if _, err := duty.ParseClock(start); err != nil {
		return "", "", pkgerrors.NewValidation("start_time", "horário inválido, use HH:MM")
	}
	if _, err := duty.ParseClock(end); err != nil {
		return "", "", pkgerrors.NewValidation("end_time", "horário inválido, use HH:MM")
	}
	return start, end, nil
}

func requireDuration(d *float64) error {
	if d != nil && *d < 0 {
		return pkgerrors.NewValidation("explicit_duration", "duração não pode ser negativa")
	}
	return nil
}

// requireMember o militar precisa estar selecionado e existir no efetivo
func requireMember(ctx context.Context, repo *repository.Repository, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.NewValidation("member_id", "selecione o militar")
	}
	if _, err := repo.Member.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewValidation("member_id", "militar não encontrado no efetivo")
		}
		return err
	}
	return nil
}

// canonicalType rótulo do catálogo quando reconhecido; texto livre caso contrário
func canonicalType(s string) string {
	if t, ok := duty.ParseType(s); ok {
		return string(t)
	}
	return strings.TrimSpace(s)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
