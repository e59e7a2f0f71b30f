package repository

import (
	"context"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type ProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// List 生产大纲列表，按起始日期降序
func (r *ProgramRepository) List(ctx context.Context, workshopID *uint) ([]entity.ProductionProgram, error) {
	var programs []entity.ProductionProgram
	query := r.db.WithContext(ctx).Preload("Workshop")
	if workshopID != nil {
		query = query.Where("workshop_pk = ?", *workshopID)
	}
	err := query.Order("start_date DESC, production_program_pk DESC").Find(&programs).Error
	return programs, err
}

// FindByID 生产大纲详情（含行）
func (r *ProgramRepository) FindByID(ctx context.Context, id uint) (*entity.ProductionProgram, error) {
	var program entity.ProductionProgram
	err := r.db.WithContext(ctx).
		Preload("Workshop").
		Preload("Lines").
		Preload("Lines.Detail").
		First(&program, "production_program_pk = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) Create(ctx context.Context, program *entity.ProductionProgram) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *ProgramRepository) Update(ctx context.Context, program *entity.ProductionProgram) error {
	return r.db.WithContext(ctx).Save(program).Error
}

// Delete 删除生产大纲及其行
func (r *ProgramRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("production_program_pk = ?", id).Delete(&entity.ProgramLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.ProductionProgram{}, "production_program_pk = ?", id).Error
	})
}

// Overlapping 指定车间与[from, to]区间相交的生产大纲（含行），按起始日期升序
func (r *ProgramRepository) Overlapping(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ProductionProgram, error) {
	var programs []entity.ProductionProgram
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("workshop_pk = ?", workshopID).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date, production_program_pk").
		Find(&programs).Error
	return programs, err
}

func (r *ProgramRepository) CreateLine(ctx context.Context, line *entity.ProgramLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *ProgramRepository) DeleteLine(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ProgramLine{}, "program_line_pk = ?", id).Error
}
