package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// SewingServiceUseCase cadastro dos serviços de costura e da tabela tipo de cortina → serviços.
type SewingServiceUseCase struct {
	repo repository.SewingServiceRepository
}

// NewSewingServiceUseCase constrói o caso de uso.
func NewSewingServiceUseCase(repo repository.SewingServiceRepository) *SewingServiceUseCase {
	return &SewingServiceUseCase{repo: repo}
}

// Create cadastra o serviço e o vincula aos tipos de cortina informados.
func (uc *SewingServiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateSewingServiceRequest) (*dto.SewingServiceResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.SewingService{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		UnitCost:     in.UnitCost,
		LiningFinish: in.LiningFinish,
		Active:       true,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	for _, ct := range in.CurtainTypes {
		if err := uc.LinkCurtainType(ctx, companyID, s.ID, ct); err != nil {
			return nil, err
		}
	}
	return toSewingServiceResponse(s), nil
}

// List serviços da empresa.
func (uc *SewingServiceUseCase) List(ctx context.Context, companyID string) ([]dto.SewingServiceResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SewingServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSewingServiceResponse(s))
	}
	return out, nil
}

// LinkCurtainType associa o serviço ao tipo de cortina (wave, prega americana...).
func (uc *SewingServiceUseCase) LinkCurtainType(ctx context.Context, companyID, serviceID, curtainType string) error {
	curtainType = strings.TrimSpace(strings.ToLower(curtainType))
	if serviceID == "" || curtainType == "" {
		return domain.ErrInvalidInput
	}
	found, err := uc.repo.GetByIDs(ctx, []string{serviceID})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return domain.ErrNotFound
	}
	if found[0].CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.LinkCurtainType(ctx, companyID, curtainType, serviceID)
}

func toSewingServiceResponse(s *entity.SewingService) *dto.SewingServiceResponse {
	return &dto.SewingServiceResponse{
		ID:           s.ID,
		Name:         s.Name,
		UnitCost:     s.UnitCost,
		LiningFinish: s.LiningFinish,
		Active:       s.Active,
	}
}
