package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

type UsingService struct {
	repo *repository.UsingRepository
}

func NewUsingService(repo *repository.UsingRepository) *UsingService {
	return &UsingService{repo: repo}
}

func (s *UsingService) List(ctx context.Context) ([]entity.UsingInstruction, error) {
	return s.repo.List(ctx)
}

func (s *UsingService) Get(ctx context.Context, id uint) (*entity.UsingInstruction, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateUsingInput struct {
	DetailManufacturedID uint             `json:"detail_manufactured_pk" binding:"required"`
	Lines                []UsingLineInput `json:"using_lines"`
}

type UsingLineInput struct {
	DetailID uint `json:"detail_pk" binding:"required"`
	Amount   int  `json:"amount" binding:"required,gt=0"`
}

// Create 创建装入说明。一个零件至多一条说明，重复创建报错。
func (s *UsingService) Create(ctx context.Context, input *CreateUsingInput) (*entity.UsingInstruction, error) {
	existing, err := s.repo.FindByDetail(ctx, input.DetailManufacturedID)
	if err != nil {
		return nil, fmt.Errorf("查询装入说明失败: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("零件 %d 已有装入说明", input.DetailManufacturedID)
	}

	instruction := &entity.UsingInstruction{
		DetailManufacturedID: input.DetailManufacturedID,
	}
	for _, line := range input.Lines {
		if line.DetailID == input.DetailManufacturedID {
			return nil, fmt.Errorf("零件 %d 不能装入自身", line.DetailID)
		}
		instruction.Lines = append(instruction.Lines, entity.UsingLine{
			DetailID: line.DetailID,
			Amount:   line.Amount,
		})
	}
	if err := s.repo.Create(ctx, instruction); err != nil {
		return nil, fmt.Errorf("创建装入说明失败: %w", err)
	}
	return s.repo.FindByID(ctx, instruction.ID)
}

func (s *UsingService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("装入说明不存在: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// AddLine 给装入说明追加一行
func (s *UsingService) AddLine(ctx context.Context, usingID uint, input *UsingLineInput) (*entity.UsingInstruction, error) {
	instruction, err := s.repo.FindByID(ctx, usingID)
	if err != nil {
		return nil, fmt.Errorf("装入说明不存在: %w", err)
	}
	if input.DetailID == instruction.DetailManufacturedID {
		return nil, fmt.Errorf("零件 %d 不能装入自身", input.DetailID)
	}
	line := &entity.UsingLine{
		UsingID:  usingID,
		DetailID: input.DetailID,
		Amount:   input.Amount,
	}
	if err := s.repo.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("创建装入行失败: %w", err)
	}
	return s.repo.FindByID(ctx, usingID)
}

func (s *UsingService) DeleteLine(ctx context.Context, id uint) error {
	return s.repo.DeleteLine(ctx, id)
}
