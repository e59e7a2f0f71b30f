package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

type ProgramService struct {
	repo *repository.ProgramRepository
}

func NewProgramService(repo *repository.ProgramRepository) *ProgramService {
	return &ProgramService{repo: repo}
}

func (s *ProgramService) List(ctx context.Context, workshopID *uint) ([]entity.ProductionProgram, error) {
	return s.repo.List(ctx, workshopID)
}

func (s *ProgramService) Get(ctx context.Context, id uint) (*entity.ProductionProgram, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateProgramInput struct {
	StartDate    time.Time          `json:"start_date" binding:"required"`
	EndDate      time.Time          `json:"end_date" binding:"required"`
	CreationDate *time.Time         `json:"creation_date"`
	WorkshopID   uint               `json:"workshop_pk" binding:"required"`
	Lines        []ProgramLineInput `json:"program_lines"`
}

type ProgramLineInput struct {
	DetailID uint `json:"detail_pk" binding:"required"`
	Amount   int  `json:"amount" binding:"required"`
}

// Create 创建生产大纲。计划区间必须非空。
func (s *ProgramService) Create(ctx context.Context, input *CreateProgramInput) (*entity.ProductionProgram, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidDateRange
	}
	creationDate := time.Now()
	if input.CreationDate != nil {
		creationDate = *input.CreationDate
	}
	program := &entity.ProductionProgram{
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		CreationDate: creationDate,
		WorkshopID:   input.WorkshopID,
	}
	for _, line := range input.Lines {
		program.Lines = append(program.Lines, entity.ProgramLine{
			DetailID: line.DetailID,
			Amount:   line.Amount,
		})
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("创建生产大纲失败: %w", err)
	}
	return s.repo.FindByID(ctx, program.ID)
}

type UpdateProgramInput struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (s *ProgramService) Update(ctx context.Context, id uint, input *UpdateProgramInput) (*entity.ProductionProgram, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("生产大纲不存在: %w", err)
	}
	if input.StartDate != nil {
		program.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		program.EndDate = *input.EndDate
	}
	if program.EndDate.Before(program.StartDate) {
		return nil, ErrInvalidDateRange
	}
	program.Lines = nil
	program.Workshop = nil
	if err := s.repo.Update(ctx, program); err != nil {
		return nil, fmt.Errorf("更新生产大纲失败: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("生产大纲不存在: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// AddLine 给生产大纲追加一行
func (s *ProgramService) AddLine(ctx context.Context, programID uint, input *ProgramLineInput) (*entity.ProductionProgram, error) {
	if _, err := s.repo.FindByID(ctx, programID); err != nil {
		return nil, fmt.Errorf("生产大纲不存在: %w", err)
	}
	line := &entity.ProgramLine{
		ProgramID: programID,
		DetailID:  input.DetailID,
		Amount:    input.Amount,
	}
	if err := s.repo.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("创建大纲行失败: %w", err)
	}
	return s.repo.FindByID(ctx, programID)
}

func (s *ProgramService) DeleteLine(ctx context.Context, id uint) error {
	return s.repo.DeleteLine(ctx, id)
}
