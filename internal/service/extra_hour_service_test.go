package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/azalim25/cfoescala-sub000/internal/duty"
	"github.com/azalim25/cfoescala-sub000/internal/dto"
	pkgerrors "github.com/azalim25/cfoescala-sub000/pkg/errors"
)

func setupTestExtraHourService() (ExtraHourService, *mockRepos) {
	repo, mocks := newMockRepos()
	mocks.seedMember("m1", "Ana", "1", intPtr(1))
	return NewExtraHourService(repo, zap.NewNop()), mocks
}

func TestExtraHourService_Create_NormalizesCategory(t *testing.T) {
	svc, _ := setupTestExtraHourService()

	resp, err := svc.Create(context.Background(), &dto.CreateExtraHourRequest{
		MemberID: "m1", Date: "2024-06-04", Category: "CFO I-estagio-1°BBM-24h", Hours: 2,
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}
	if resp.Category != "CFO I - Estágio - 1°BBM - 24h" {
		t.Errorf("categoria não normalizada: %q", resp.Category)
	}
	if resp.Parsed.Kind != duty.KindManualInternship || resp.Parsed.Tier != 24 {
		t.Errorf("categoria interpretada inesperada: %+v", resp.Parsed)
	}
}

func TestExtraHourService_Create_HourLog(t *testing.T) {
	svc, _ := setupTestExtraHourService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateExtraHourRequest{
		MemberID: "m1", Date: "2024-06-04", Category: "CFO I - Registro de Horas",
		Hours: 3, Minutes: 30, Description: "Serviço: Apoio ao desfile",
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}
	if resp.TotalHours != 3.5 {
		t.Errorf("esperado 3.5h, obtido %v", resp.TotalHours)
	}

	_, err = svc.Create(ctx, &dto.CreateExtraHourRequest{
		MemberID: "m1", Date: "2024-06-04", Category: "CFO I - Registro de Horas",
	})
	if !pkgerrors.IsValidation(err) {
		t.Errorf("registro sem duração deveria falhar, obtido %v", err)
	}
}

func TestExtraHourService_Validation(t *testing.T) {
	svc, _ := setupTestExtraHourService()

	cases := map[string]dto.CreateExtraHourRequest{
		"categoria vazia":      {MemberID: "m1", Date: "2024-06-04", Hours: 1},
		"categoria fora":       {MemberID: "m1", Date: "2024-06-04", Category: "Horas avulsas", Hours: 1},
		"serviço desconhecido": {MemberID: "m1", Date: "2024-06-04", Category: "CFO I - Palestra", Hours: 2},
		"minutos inválidos":    {MemberID: "m1", Date: "2024-06-04", Category: "CFO I - Sobreaviso", Minutes: 75},
		"horas negativas":      {MemberID: "m1", Date: "2024-06-04", Category: "CFO I - Sobreaviso", Hours: -1},
		"militar desconhecido": {MemberID: "ghost", Date: "2024-06-04", Category: "CFO I - Sobreaviso", Hours: 1},
		"data ausente":         {MemberID: "m1", Category: "CFO I - Sobreaviso", Hours: 1},
	}
	for name, req := range cases {
		req := req
		if _, err := svc.Create(context.Background(), &req); !pkgerrors.IsValidation(err) {
			t.Errorf("%s: esperado erro de validação, obtido %v", name, err)
		}
	}
}

func TestExtraHourService_Update(t *testing.T) {
	svc, _ := setupTestExtraHourService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateExtraHourRequest{
		MemberID: "m1", Date: "2024-06-04", Category: "CFO I - Faxina", Hours: 2,
	})
	if err != nil {
		t.Fatalf("Create deveria ter sucesso: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, &dto.UpdateExtraHourRequest{Category: strPtr("lixo")}); !pkgerrors.IsValidation(err) {
		t.Errorf("categoria inválida deveria falhar, obtido %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateExtraHourRequest{Category: strPtr("CFO I - Palestra")}); !pkgerrors.IsValidation(err) {
		t.Errorf("serviço desconhecido deveria falhar, obtido %v", err)
	}
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateExtraHourRequest{Hours: intPtr(4)})
	if err != nil {
		t.Fatalf("Update deveria ter sucesso: %v", err)
	}
	if updated.Hours != 4 || updated.Category != "CFO I - Faxina" {
		t.Errorf("lançamento atualizado inesperado: %+v", updated)
	}
	if _, err := svc.Update(ctx, "nao-existe", &dto.UpdateExtraHourRequest{}); !errors.Is(err, ErrExtraHourNotFound) {
		t.Errorf("esperado ErrExtraHourNotFound, obtido %v", err)
	}
}
