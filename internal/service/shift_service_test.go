package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/internal/dto"
	"github.com/azalim25/cfoescala-sub000/internal/model"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

func setupTestShiftService() (ShiftService, *mockRepos) {
	repo, mocks := newMockRepos()
	mocks.seedMember("m1", "Ana", "1", intPtr(1))
	mocks.seedMember("m2", "Bruno", "2", intPtr(2))
	return NewShiftService(repo, zap.NewNop()), mocks
}

func TestShiftService_Create(t *testing.T) {
	svc, mocks := setupTestShiftService()

	resp, err := svc.Create(context.Background(), &dto.CreateShiftRequest{
		MemberID: "m1", Date: "2024-06-04", DutyType: "comandante da guarda",
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}
	if resp.DutyType != "Comandante da Guarda" {
		t.Errorf("esperado tipo canônico, obtido %q", resp.DutyType)
	}
	if resp.Status != model.ShiftStatusConfirmed {
		t.Errorf("esperado status padrão confirmed, obtido %q", resp.Status)
	}
	if len(mocks.stage.stages) != 0 {
		t.Error("sem sync_stage nenhum estágio deveria ser gravado")
	}
}

func TestShiftService_Create_Validation(t *testing.T) {
	svc, mocks := setupTestShiftService()

	cases := map[string]dto.CreateShiftRequest{
		"sem militar":          {Date: "2024-06-04", DutyType: "Estágio"},
		"militar inexistente":  {MemberID: "ghost", Date: "2024-06-04", DutyType: "Estágio"},
		"data inválida":        {MemberID: "m1", Date: "04/06/2024", DutyType: "Estágio"},
		"sem tipo":             {MemberID: "m1", Date: "2024-06-04"},
		"só início":            {MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", StartTime: "08:00"},
		"horário inválido":     {MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", StartTime: "25:00", EndTime: "08:00"},
		"duração negativa":     {MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", ExplicitDuration: floatPtr(-1)},
		"status desconhecido":  {MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", Status: "cancelado"},
		"sync fora de estágio": {MemberID: "m1", Date: "2024-06-04", DutyType: "Faxina", SyncStage: true},
	}
	for name, req := range cases {
		req := req
		if _, err := svc.Create(context.Background(), &req); !pkgerrors.IsValidation(err) {
			t.Errorf("%s: esperado erro de validação, obtido %v", name, err)
		}
	}
	if len(mocks.shift.shifts) != 0 {
		t.Errorf("nenhuma escala deveria ser gravada, obtido %d", len(mocks.shift.shifts))
	}
}

func TestShiftService_Create_SyncStage(t *testing.T) {
	svc, mocks := setupTestShiftService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateShiftRequest{
		MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio",
		StartTime: "08:00", EndTime: "20:00", Location: strPtr("2°BBM"), SyncStage: true,
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}
	if resp.StageID == "" {
		t.Fatal("esperado stage_id preenchido")
	}
	stage := mocks.stage.stages[resp.StageID]
	if stage == nil || stage.Location != "2°BBM" || stage.StartTime != "08:00" {
		t.Errorf("estágio sincronizado com dados inesperados: %+v", stage)
	}

	// segundo registro no mesmo dia reaproveita o estágio existente
	again, err := svc.Create(ctx, &dto.CreateShiftRequest{
		MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", SyncStage: true,
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}
	if again.StageID != resp.StageID {
		t.Errorf("esperado estágio %s reaproveitado, obtido %s", resp.StageID, again.StageID)
	}
	if len(mocks.stage.stages) != 1 {
		t.Errorf("esperado 1 estágio, obtido %d", len(mocks.stage.stages))
	}
}

func TestShiftService_Create_PartialWrite(t *testing.T) {
	svc, mocks := setupTestShiftService()
	mocks.stage.createErr = errors.New("conexão perdida")

	resp, err := svc.Create(context.Background(), &dto.CreateShiftRequest{
		MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", SyncStage: true,
	})
	if !errors.Is(err, pkgerrors.ErrPartialWrite) {
		t.Fatalf("esperado ErrPartialWrite, obtido %v", err)
	}
	if resp == nil || resp.ID == "" {
		t.Fatal("a escala gravada deveria voltar junto com o erro")
	}
	if _, ok := mocks.shift.shifts[resp.ID]; !ok {
		t.Error("a escala deveria continuar gravada")
	}
	if resp.StageID != "" {
		t.Errorf("stage_id deveria estar vazio, obtido %q", resp.StageID)
	}
}

func TestShiftService_Update(t *testing.T) {
	svc, _ := setupTestShiftService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateShiftRequest{
		MemberID: "m1", Date: "2024-06-04", DutyType: "Estágio", Location: strPtr("COBOM"),
		ExplicitDuration: floatPtr(12),
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateShiftRequest{
		ClearLocation: true, ClearDuration: true, Status: strPtr(model.ShiftStatusCompleted),
	})
	if err != nil {
		t.Fatalf("Update deveria ter sucesso: %v", err)
	}
	if updated.Location != nil || updated.ExplicitDuration != nil {
		t.Errorf("local e duração deveriam ser limpos: %+v", updated)
	}
	if updated.Status != model.ShiftStatusCompleted {
		t.Errorf("esperado status completed, obtido %q", updated.Status)
	}

	if _, err := svc.Update(ctx, created.ID, &dto.UpdateShiftRequest{EndTime: strPtr("10:00")}); !pkgerrors.IsValidation(err) {
		t.Errorf("fim sem início deveria falhar na validação, obtido %v", err)
	}
	if _, err := svc.Update(ctx, "nao-existe", &dto.UpdateShiftRequest{}); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("esperado ErrShiftNotFound, obtido %v", err)
	}
}

func TestShiftService_ReplaceDays(t *testing.T) {
	svc, mocks := setupTestShiftService()
	ctx := context.Background()

	for _, date := range []string{"2024-06-03", "2024-06-04", "2024-06-05"} {
		if _, err := svc.Create(ctx, &dto.CreateShiftRequest{MemberID: "m1", Date: date, DutyType: "Faxina"}); err != nil {
			t.Fatalf("Create deveria ter sucesso: %v", err)
		}
	}

	resp, err := svc.ReplaceDays(ctx, &dto.ReplaceDaysRequest{
		Dates: []string{"2024-06-03", "2024-06-04"},
		Shifts: []dto.CreateShiftRequest{
			{MemberID: "m2", Date: "2024-06-04", DutyType: "Sobreaviso"},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceDays deveria ter sucesso: %v", err)
	}
	if resp.Removed != 2 {
		t.Errorf("esperado 2 removidas, obtido %d", resp.Removed)
	}
	if len(resp.Created) != 1 || resp.Created[0].DutyType != "Sobreaviso" {
		t.Errorf("criadas inesperadas: %+v", resp.Created)
	}
	if len(mocks.shift.shifts) != 2 {
		t.Errorf("esperado 2 escalas restantes, obtido %d", len(mocks.shift.shifts))
	}
}

func TestShiftService_ReplaceDays_Validation(t *testing.T) {
	svc, mocks := setupTestShiftService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, &dto.CreateShiftRequest{MemberID: "m1", Date: "2024-06-04", DutyType: "Faxina"}); err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}

	_, err := svc.ReplaceDays(ctx, &dto.ReplaceDaysRequest{
		Dates:  []string{"2024-06-04"},
		Shifts: []dto.CreateShiftRequest{{MemberID: "m2", Date: "2024-06-05", DutyType: "Faxina"}},
	})
	var v *pkgerrors.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("esperado erro de validação, obtido %v", err)
	}
	if v.Field != "shifts[0].date" {
		t.Errorf("esperado campo shifts[0].date, obtido %q", v.Field)
	}

	_, err = svc.ReplaceDays(ctx, &dto.ReplaceDaysRequest{
		Dates:  []string{"2024-06-04"},
		Shifts: []dto.CreateShiftRequest{{MemberID: "m2", Date: "2024-06-04"}},
	})
	if !errors.As(err, &v) || v.Field != "shifts[0].duty_type" {
		t.Errorf("esperado campo shifts[0].duty_type, obtido %v", err)
	}

	if len(mocks.shift.shifts) != 1 {
		t.Error("validação com falha não pode remover escalas")
	}
}

func TestShiftService_ReplaceDays_StoreFailure(t *testing.T) {
	svc, mocks := setupTestShiftService()
	mocks.shift.replaceErr = errors.New("rollback")

	_, err := svc.ReplaceDays(context.Background(), &dto.ReplaceDaysRequest{Dates: []string{"2024-06-04"}})
	if err == nil || pkgerrors.IsValidation(err) {
		t.Errorf("esperado erro do armazenamento, obtido %v", err)
	}
}
