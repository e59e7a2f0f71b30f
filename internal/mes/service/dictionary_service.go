package service

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

// DetailService 零件基础数据（只读，维护走管理端）
type DetailService struct {
	repo *repository.DetailRepository
}

func NewDetailService(repo *repository.DetailRepository) *DetailService {
	return &DetailService{repo: repo}
}

func (s *DetailService) List(ctx context.Context, keyword string) ([]entity.Detail, error) {
	return s.repo.List(ctx, keyword)
}

func (s *DetailService) Get(ctx context.Context, id uint) (*entity.Detail, error) {
	return s.repo.FindByID(ctx, id)
}

// WorkshopService 车间基础数据（只读）
type WorkshopService struct {
	repo *repository.WorkshopRepository
}

func NewWorkshopService(repo *repository.WorkshopRepository) *WorkshopService {
	return &WorkshopService{repo: repo}
}

func (s *WorkshopService) List(ctx context.Context, keyword string) ([]entity.Workshop, error) {
	return s.repo.List(ctx, keyword)
}

func (s *WorkshopService) Get(ctx context.Context, id uint) (*entity.Workshop, error) {
	return s.repo.FindByID(ctx, id)
}
