package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type UsingRepository struct {
	db *gorm.DB
}

func NewUsingRepository(db *gorm.DB) *UsingRepository {
	return &UsingRepository{db: db}
}

// List 装入说明列表（含行）
func (r *UsingRepository) List(ctx context.Context) ([]entity.UsingInstruction, error) {
	var instructions []entity.UsingInstruction
	err := r.db.WithContext(ctx).
		Preload("DetailManufactured").
		Preload("Lines").
		Preload("Lines.Detail").
		Order("using_pk").
		Find(&instructions).Error
	return instructions, err
}

// FindByID 装入说明详情（含行）
func (r *UsingRepository) FindByID(ctx context.Context, id uint) (*entity.UsingInstruction, error) {
	var instruction entity.UsingInstruction
	err := r.db.WithContext(ctx).
		Preload("DetailManufactured").
		Preload("Lines").
		Preload("Lines.Detail").
		First(&instruction, "using_pk = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instruction, nil
}

// FindByDetail 零件的装入说明（含行）。原材料件没有说明，返回(nil, nil)。
func (r *UsingRepository) FindByDetail(ctx context.Context, detailID uint) (*entity.UsingInstruction, error) {
	var instruction entity.UsingInstruction
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&instruction, "detail_manufactured_pk = ?", detailID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instruction, nil
}

func (r *UsingRepository) Create(ctx context.Context, instruction *entity.UsingInstruction) error {
	return r.db.WithContext(ctx).Create(instruction).Error
}

// Delete 删除装入说明及其行
func (r *UsingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("using_pk = ?", id).Delete(&entity.UsingLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.UsingInstruction{}, "using_pk = ?", id).Error
	})
}

func (r *UsingRepository) CreateLine(ctx context.Context, line *entity.UsingLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *UsingRepository) DeleteLine(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.UsingLine{}, "using_line_pk = ?", id).Error
}
