package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

type ReportService struct {
	repo *repository.ReportRepository
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) List(ctx context.Context, senderID *uint) ([]entity.Report, error) {
	return s.repo.List(ctx, senderID)
}

func (s *ReportService) Get(ctx context.Context, id uint) (*entity.Report, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateReportInput struct {
	DocNum   int               `json:"doc_num" binding:"required"`
	Date     *time.Time        `json:"date"`
	SenderID *uint             `json:"workshop_sender_pk"`
	Lines    []ReportLineInput `json:"report_lines"`
}

type ReportLineInput struct {
	DetailID   uint  `json:"detail_pk" binding:"required"`
	Produced   int   `json:"produced"`
	ReceiverID *uint `json:"workshop_receiver_pk"`
}

// Create 创建转运单（可带行）。日期缺省为当天。
func (s *ReportService) Create(ctx context.Context, input *CreateReportInput) (*entity.Report, error) {
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	report := &entity.Report{
		DocNum:   input.DocNum,
		Date:     date,
		SenderID: input.SenderID,
	}
	for _, line := range input.Lines {
		report.Lines = append(report.Lines, entity.ReportLine{
			DetailID:   line.DetailID,
			Produced:   line.Produced,
			ReceiverID: line.ReceiverID,
		})
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("创建转运单失败: %w", err)
	}
	return s.repo.FindByID(ctx, report.ID)
}

type UpdateReportInput struct {
	DocNum   *int       `json:"doc_num"`
	Date     *time.Time `json:"date"`
	SenderID *uint      `json:"workshop_sender_pk"`
}

func (s *ReportService) Update(ctx context.Context, id uint, input *UpdateReportInput) (*entity.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("转运单不存在: %w", err)
	}
	if input.DocNum != nil {
		report.DocNum = *input.DocNum
	}
	if input.Date != nil {
		report.Date = *input.Date
	}
	if input.SenderID != nil {
		report.SenderID = input.SenderID
	}
	// Save会级联写关联行，更新前去掉
	report.Lines = nil
	report.Sender = nil
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("更新转运单失败: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ReportService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("转运单不存在: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *ReportService) ListLines(ctx context.Context, reportID *uint) ([]entity.ReportLine, error) {
	return s.repo.ListLines(ctx, reportID)
}

func (s *ReportService) GetLine(ctx context.Context, id uint) (*entity.ReportLine, error) {
	return s.repo.FindLineByID(ctx, id)
}

type ReportLineCreateInput struct {
	ReportID   uint  `json:"report_pk" binding:"required"`
	DetailID   uint  `json:"detail_pk" binding:"required"`
	Produced   int   `json:"produced"`
	ReceiverID *uint `json:"workshop_receiver_pk"`
}

func (s *ReportService) CreateLine(ctx context.Context, input *ReportLineCreateInput) (*entity.ReportLine, error) {
	if _, err := s.repo.FindByID(ctx, input.ReportID); err != nil {
		return nil, fmt.Errorf("转运单不存在: %w", err)
	}
	line := &entity.ReportLine{
		ReportID:   input.ReportID,
		DetailID:   input.DetailID,
		Produced:   input.Produced,
		ReceiverID: input.ReceiverID,
	}
	if err := s.repo.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("创建转运单行失败: %w", err)
	}
	return s.repo.FindLineByID(ctx, line.ID)
}

type ReportLineUpdateInput struct {
	DetailID   *uint `json:"detail_pk"`
	Produced   *int  `json:"produced"`
	ReceiverID *uint `json:"workshop_receiver_pk"`
}

func (s *ReportService) UpdateLine(ctx context.Context, id uint, input *ReportLineUpdateInput) (*entity.ReportLine, error) {
	line, err := s.repo.FindLineByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("转运单行不存在: %w", err)
	}
	if input.DetailID != nil {
		line.DetailID = *input.DetailID
	}
	if input.Produced != nil {
		line.Produced = *input.Produced
	}
	if input.ReceiverID != nil {
		line.ReceiverID = input.ReceiverID
	}
	line.Detail = nil
	if err := s.repo.UpdateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("更新转运单行失败: %w", err)
	}
	return s.repo.FindLineByID(ctx, id)
}

func (s *ReportService) DeleteLine(ctx context.Context, id uint) error {
	if _, err := s.repo.FindLineByID(ctx, id); err != nil {
		return fmt.Errorf("转运单行不存在: %w", err)
	}
	return s.repo.DeleteLine(ctx, id)
}
