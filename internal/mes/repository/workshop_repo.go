package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type WorkshopRepository struct {
	db *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) *WorkshopRepository {
	return &WorkshopRepository{db: db}
}

// List 车间列表，可按名称模糊搜索
func (r *WorkshopRepository) List(ctx context.Context, keyword string) ([]entity.Workshop, error) {
	var workshops []entity.Workshop
	query := r.db.WithContext(ctx).Model(&entity.Workshop{})
	if keyword != "" {
		query = query.Where("workshop_name ILIKE ?", "%"+keyword+"%")
	}
	err := query.Order("workshop_pk").Find(&workshops).Error
	return workshops, err
}

// FindByID 根据ID查找车间
func (r *WorkshopRepository) FindByID(ctx context.Context, id uint) (*entity.Workshop, error) {
	var workshop entity.Workshop
	if err := r.db.WithContext(ctx).First(&workshop, "workshop_pk = ?", id).Error; err != nil {
		return nil, err
	}
	return &workshop, nil
}
