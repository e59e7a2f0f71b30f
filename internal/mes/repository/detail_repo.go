package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type DetailRepository struct {
	db *gorm.DB
}

func NewDetailRepository(db *gorm.DB) *DetailRepository {
	return &DetailRepository{db: db}
}

// List 零件列表，可按名称模糊搜索
func (r *DetailRepository) List(ctx context.Context, keyword string) ([]entity.Detail, error) {
	var details []entity.Detail
	query := r.db.WithContext(ctx).Model(&entity.Detail{})
	if keyword != "" {
		query = query.Where("detail_name ILIKE ?", "%"+keyword+"%")
	}
	err := query.Order("detail_pk").Find(&details).Error
	return details, err
}

// FindByID 根据ID查找零件
func (r *DetailRepository) FindByID(ctx context.Context, id uint) (*entity.Detail, error) {
	var detail entity.Detail
	if err := r.db.WithContext(ctx).First(&detail, "detail_pk = ?", id).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByIDs 批量查找零件，返回按ID索引的映射
func (r *DetailRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.Detail, error) {
	var details []entity.Detail
	if err := r.db.WithContext(ctx).Where("detail_pk IN ?", ids).Find(&details).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.Detail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}
	return byID, nil
}
