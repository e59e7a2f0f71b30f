package repository

import (
	"context"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// List 转运单列表，按日期降序
func (r *ReportRepository) List(ctx context.Context, senderID *uint) ([]entity.Report, error) {
	var reports []entity.Report
	query := r.db.WithContext(ctx).Preload("Sender")
	if senderID != nil {
		query = query.Where("workshop_sender_pk = ?", *senderID)
	}
	err := query.Order("date DESC, report_pk DESC").Find(&reports).Error
	return reports, err
}

// FindByID 转运单详情（含行）
func (r *ReportRepository) FindByID(ctx context.Context, id uint) (*entity.Report, error) {
	var report entity.Report
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Lines").
		Preload("Lines.Detail").
		First(&report, "report_pk = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) Update(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete 删除转运单及其行
func (r *ReportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_pk = ?", id).Delete(&entity.ReportLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Report{}, "report_pk = ?", id).Error
	})
}

// ListLines 转运单行列表，可按所属单过滤
func (r *ReportRepository) ListLines(ctx context.Context, reportID *uint) ([]entity.ReportLine, error) {
	var lines []entity.ReportLine
	query := r.db.WithContext(ctx).Preload("Detail")
	if reportID != nil {
		query = query.Where("report_pk = ?", *reportID)
	}
	err := query.Order("report_line_pk").Find(&lines).Error
	return lines, err
}

// FindLineByID 根据ID查找转运单行
func (r *ReportRepository) FindLineByID(ctx context.Context, id uint) (*entity.ReportLine, error) {
	var line entity.ReportLine
	if err := r.db.WithContext(ctx).Preload("Detail").First(&line, "report_line_pk = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *ReportRepository) CreateLine(ctx context.Context, line *entity.ReportLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *ReportRepository) UpdateLine(ctx context.Context, line *entity.ReportLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *ReportRepository) DeleteLine(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ReportLine{}, "report_line_pk = ?", id).Error
}

// LinesSentBy 指定车间在[from, to]（含两端）发出的、数量非零的转运单行，
// 按单日期、行ID稳定排序
func (r *ReportRepository) LinesSentBy(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ReportLine, error) {
	var lines []entity.ReportLine
	err := r.db.WithContext(ctx).
		Joins("JOIN report ON report.report_pk = report_line.report_pk").
		Where("report.workshop_sender_pk = ?", workshopID).
		Where("report.date BETWEEN ? AND ?", from, to).
		Where("report_line.produced <> 0").
		Order("report.date, report_line.report_line_pk").
		Find(&lines).Error
	return lines, err
}

// LinesReceivedBy 指定车间在[from, to]（含两端）收到的转运单行。
// 收货车间以行级workshop_receiver_pk为准。
func (r *ReportRepository) LinesReceivedBy(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ReportLine, error) {
	var lines []entity.ReportLine
	err := r.db.WithContext(ctx).
		Joins("JOIN report ON report.report_pk = report_line.report_pk").
		Where("report_line.workshop_receiver_pk = ?", workshopID).
		Where("report.date BETWEEN ? AND ?", from, to).
		Where("report_line.produced <> 0").
		Order("report.date, report_line.report_line_pk").
		Find(&lines).Error
	return lines, err
}
