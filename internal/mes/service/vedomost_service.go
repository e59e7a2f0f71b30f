package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

type VedomostService struct {
	repo   *repository.VedomostRepository
	usings InstructionStore
}

func NewVedomostService(repo *repository.VedomostRepository, usings InstructionStore) *VedomostService {
	return &VedomostService{repo: repo, usings: usings}
}

func (s *VedomostService) List(ctx context.Context, workshopID *uint) ([]entity.Vedomost, error) {
	return s.repo.List(ctx, workshopID)
}

func (s *VedomostService) Get(ctx context.Context, id uint) (*entity.Vedomost, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateVedomostInput struct {
	DocNum       int                 `json:"doc_num" binding:"required"`
	CreationDate *time.Time          `json:"creation_date"`
	WorkshopID   *uint               `json:"workshop_pk"`
	Lines        []VedomostLineInput `json:"vedomost_lines"`
}

type VedomostLineInput struct {
	DetailID uint `json:"detail_pk" binding:"required"`
	Amount   int  `json:"amount"`
}

// Create 创建盘存清单（可带行）。建立日期缺省为当天。
func (s *VedomostService) Create(ctx context.Context, input *CreateVedomostInput) (*entity.Vedomost, error) {
	creationDate := time.Now()
	if input.CreationDate != nil {
		creationDate = *input.CreationDate
	}
	vedomost := &entity.Vedomost{
		DocNum:       input.DocNum,
		CreationDate: creationDate,
		WorkshopID:   input.WorkshopID,
	}
	for _, line := range input.Lines {
		vedomost.Lines = append(vedomost.Lines, entity.VedomostLine{
			DetailID: line.DetailID,
			Amount:   line.Amount,
		})
	}
	if err := s.repo.Create(ctx, vedomost); err != nil {
		return nil, fmt.Errorf("创建盘存清单失败: %w", err)
	}
	return s.repo.FindByID(ctx, vedomost.ID)
}

type UpdateVedomostInput struct {
	DocNum       *int       `json:"doc_num"`
	CreationDate *time.Time `json:"creation_date"`
	WorkshopID   *uint      `json:"workshop_pk"`
}

func (s *VedomostService) Update(ctx context.Context, id uint, input *UpdateVedomostInput) (*entity.Vedomost, error) {
	vedomost, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("盘存清单不存在: %w", err)
	}
	if input.DocNum != nil {
		vedomost.DocNum = *input.DocNum
	}
	if input.CreationDate != nil {
		vedomost.CreationDate = *input.CreationDate
	}
	if input.WorkshopID != nil {
		vedomost.WorkshopID = input.WorkshopID
	}
	vedomost.Lines = nil
	vedomost.Workshop = nil
	if err := s.repo.Update(ctx, vedomost); err != nil {
		return nil, fmt.Errorf("更新盘存清单失败: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *VedomostService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("盘存清单不存在: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *VedomostService) ListLines(ctx context.Context, vedomostID *uint) ([]entity.VedomostLine, error) {
	return s.repo.ListLines(ctx, vedomostID)
}

func (s *VedomostService) GetLine(ctx context.Context, id uint) (*entity.VedomostLine, error) {
	return s.repo.FindLineByID(ctx, id)
}

type VedomostLineCreateInput struct {
	VedomostID uint `json:"vedomost_pk" binding:"required"`
	DetailID   uint `json:"detail_pk" binding:"required"`
	Amount     int  `json:"amount"`
}

func (s *VedomostService) CreateLine(ctx context.Context, input *VedomostLineCreateInput) (*entity.VedomostLine, error) {
	if _, err := s.repo.FindByID(ctx, input.VedomostID); err != nil {
		return nil, fmt.Errorf("盘存清单不存在: %w", err)
	}
	line := &entity.VedomostLine{
		VedomostID: input.VedomostID,
		DetailID:   input.DetailID,
		Amount:     input.Amount,
	}
	if err := s.repo.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("创建盘存行失败: %w", err)
	}
	return s.repo.FindLineByID(ctx, line.ID)
}

type VedomostLineUpdateInput struct {
	DetailID *uint `json:"detail_pk"`
	Amount   *int  `json:"amount"`
}

func (s *VedomostService) UpdateLine(ctx context.Context, id uint, input *VedomostLineUpdateInput) (*entity.VedomostLine, error) {
	line, err := s.repo.FindLineByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("盘存行不存在: %w", err)
	}
	if input.DetailID != nil {
		line.DetailID = *input.DetailID
	}
	if input.Amount != nil {
		line.Amount = *input.Amount
	}
	line.Detail = nil
	if err := s.repo.UpdateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("更新盘存行失败: %w", err)
	}
	return s.repo.FindLineByID(ctx, id)
}

func (s *VedomostService) DeleteLine(ctx context.Context, id uint) error {
	if _, err := s.repo.FindLineByID(ctx, id); err != nil {
		return fmt.Errorf("盘存行不存在: %w", err)
	}
	return s.repo.DeleteLine(ctx, id)
}

type ExplodedLinesInput struct {
	DetailID uint `json:"detail_pk" binding:"required"`
	Amount   int  `json:"amount" binding:"required,gt=0"`
}

// AddExplodedLines 把某成品件按装入说明完全分解到原材料件，
// 将预乘好的数量作为盘存行批量写入清单。
func (s *VedomostService) AddExplodedLines(ctx context.Context, vedomostID uint, input *ExplodedLinesInput) ([]entity.VedomostLine, error) {
	if _, err := s.repo.FindByID(ctx, vedomostID); err != nil {
		return nil, fmt.Errorf("盘存清单不存在: %w", err)
	}

	merged, err := explodeToTerminal(ctx, s.usings, []Demand{{DetailID: input.DetailID, Amount: input.Amount}})
	if err != nil {
		return nil, err
	}

	detailIDs := make([]uint, 0, len(merged))
	for detailID := range merged {
		detailIDs = append(detailIDs, detailID)
	}
	sort.Slice(detailIDs, func(i, j int) bool { return detailIDs[i] < detailIDs[j] })

	lines := make([]entity.VedomostLine, 0, len(merged))
	for _, detailID := range detailIDs {
		lines = append(lines, entity.VedomostLine{
			VedomostID: vedomostID,
			DetailID:   detailID,
			Amount:     merged[detailID],
		})
	}
	if err := s.repo.CreateLines(ctx, lines); err != nil {
		return nil, fmt.Errorf("写入盘存行失败: %w", err)
	}
	return lines, nil
}
