package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type VedomostRepository struct {
	db *gorm.DB
}

func NewVedomostRepository(db *gorm.DB) *VedomostRepository {
	return &VedomostRepository{db: db}
}

// List 盘存清单列表，按建立日期降序
func (r *VedomostRepository) List(ctx context.Context, workshopID *uint) ([]entity.Vedomost, error) {
	var vedomosts []entity.Vedomost
	query := r.db.WithContext(ctx).Preload("Workshop")
	if workshopID != nil {
		query = query.Where("workshop_pk = ?", *workshopID)
	}
	err := query.Order("creation_date DESC, vedomost_pk DESC").Find(&vedomosts).Error
	return vedomosts, err
}

// FindByID 盘存清单详情（含行）
func (r *VedomostRepository) FindByID(ctx context.Context, id uint) (*entity.Vedomost, error) {
	var vedomost entity.Vedomost
	err := r.db.WithContext(ctx).
		Preload("Workshop").
		Preload("Lines").
		Preload("Lines.Detail").
		First(&vedomost, "vedomost_pk = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vedomost, nil
}

func (r *VedomostRepository) Create(ctx context.Context, vedomost *entity.Vedomost) error {
	return r.db.WithContext(ctx).Create(vedomost).Error
}

func (r *VedomostRepository) Update(ctx context.Context, vedomost *entity.Vedomost) error {
	return r.db.WithContext(ctx).Save(vedomost).Error
}

// Delete 删除盘存清单及其行
func (r *VedomostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vedomost_pk = ?", id).Delete(&entity.VedomostLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Vedomost{}, "vedomost_pk = ?", id).Error
	})
}

// LatestBefore 指定车间在date当天或之前最近的一张盘存清单（含行）。
// 没有时返回(nil, nil)。同一建立日期有多张时取哪一张不作保证。
func (r *VedomostRepository) LatestBefore(ctx context.Context, workshopID uint, date time.Time) (*entity.Vedomost, error) {
	var vedomost entity.Vedomost
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("workshop_pk = ? AND creation_date <= ?", workshopID, date).
		Order("creation_date DESC").
		First(&vedomost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vedomost, nil
}

// ListLines 盘存行列表，可按所属清单过滤
func (r *VedomostRepository) ListLines(ctx context.Context, vedomostID *uint) ([]entity.VedomostLine, error) {
	var lines []entity.VedomostLine
	query := r.db.WithContext(ctx).Preload("Detail")
	if vedomostID != nil {
		query = query.Where("vedomost_pk = ?", *vedomostID)
	}
	err := query.Order("vedomost_line_pk").Find(&lines).Error
	return lines, err
}

// FindLineByID 根据ID查找盘存行
func (r *VedomostRepository) FindLineByID(ctx context.Context, id uint) (*entity.VedomostLine, error) {
	var line entity.VedomostLine
	if err := r.db.WithContext(ctx).Preload("Detail").First(&line, "vedomost_line_pk = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *VedomostRepository) CreateLine(ctx context.Context, line *entity.VedomostLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// CreateLines 批量插入盘存行
func (r *VedomostRepository) CreateLines(ctx context.Context, lines []entity.VedomostLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *VedomostRepository) UpdateLine(ctx context.Context, line *entity.VedomostLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *VedomostRepository) DeleteLine(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.VedomostLine{}, "vedomost_line_pk = ?", id).Error
}
