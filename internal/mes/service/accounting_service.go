package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidDateRange 截止日期早于起始日期。面向用户的空结果错误。
var ErrInvalidDateRange = errors.New("end date is before start date")

// ProgramStore 计划核算所需的生产大纲只读面
type ProgramStore interface {
	Overlapping(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ProductionProgram, error)
}

// DetailStore 导出时补零件名称用
type DetailStore interface {
	FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.Detail, error)
}

// AccountingRow 某零件在查询窗口内的计划完成情况。
// 正偏差表示超产。
type AccountingRow struct {
	DetailID  uint `json:"detail_pk"`
	Actual    int  `json:"actual"`
	Planned   int  `json:"planned"`
	Deviation int  `json:"deviation"`
}

type AccountingService struct {
	reports  ReportStore
	programs ProgramStore
	details  DetailStore
}

func NewAccountingService(reports ReportStore, programs ProgramStore, details DetailStore) *AccountingService {
	return &AccountingService{
		reports:  reports,
		programs: programs,
		details:  details,
	}
}

// 日期缺省边界：未给起始日期取最早可表示日期，未给截止日期取9999-12-31
var (
	minAccountingDate = time.Time{}
	maxAccountingDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Accounting 计算车间在[start, end]窗口内逐零件的实际产量、
// 按天数折算的计划产量和偏差。
//
// 实际产量 = 窗口内该车间发出的转运行数量合计。
// 计划产量 = 每个与窗口相交的生产大纲按 重叠天数/大纲总天数（均含两端）
// 折算后四舍五入的行数量之和。
func (s *AccountingService) Accounting(ctx context.Context, workshopID uint, start, end *time.Time) ([]AccountingRow, error) {
	from := minAccountingDate
	if start != nil {
		from = *start
	}
	to := maxAccountingDate
	if end != nil {
		to = *end
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	actual := make(map[uint]int)
	sent, err := s.reports.LinesSentBy(ctx, workshopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询发货转运行失败: %w", err)
	}
	for _, line := range sent {
		actual[line.DetailID] += line.Produced
	}

	planned := make(map[uint]int)
	programs, err := s.programs.Overlapping(ctx, workshopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("查询生产大纲失败: %w", err)
	}
	for _, program := range programs {
		totalDays := spanDays(program.StartDate, program.EndDate)
		if totalDays <= 0 {
			continue
		}
		overlapFrom := program.StartDate
		if from.After(overlapFrom) {
			overlapFrom = from
		}
		overlapTo := program.EndDate
		if to.Before(overlapTo) {
			overlapTo = to
		}
		overlapDays := spanDays(overlapFrom, overlapTo)
		if overlapDays <= 0 {
			continue
		}
		ratio := float64(overlapDays) / float64(totalDays)
		for _, line := range program.Lines {
			planned[line.DetailID] += int(math.Round(float64(line.Amount) * ratio))
		}
	}

	// 只出现在一侧的零件另一侧按0补齐
	rows := make([]AccountingRow, 0, len(actual)+len(planned))
	seen := make(map[uint]struct{}, len(actual)+len(planned))
	for detailID := range actual {
		seen[detailID] = struct{}{}
	}
	for detailID := range planned {
		seen[detailID] = struct{}{}
	}
	for detailID := range seen {
		rows = append(rows, AccountingRow{
			DetailID:  detailID,
			Actual:    actual[detailID],
			Planned:   planned[detailID],
			Deviation: actual[detailID] - planned[detailID],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DetailID < rows[j].DetailID })

	return rows, nil
}

// Export 把核算结果导出为xlsx
func (s *AccountingService) Export(ctx context.Context, workshopID uint, start, end *time.Time) (*excelize.File, string, error) {
	rows, err := s.Accounting(ctx, workshopID, start, end)
	if err != nil {
		return nil, "", err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.DetailID)
	}
	names := map[uint]entity.Detail{}
	if len(ids) > 0 {
		names, err = s.details.FindByIDs(ctx, ids)
		if err != nil {
			return nil, "", fmt.Errorf("查询零件失败: %w", err)
		}
	}

	f := excelize.NewFile()
	sheet := "核算"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	headers := []string{"零件ID", "零件代号", "零件名称", "实际产量", "计划产量", "偏差"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, row := range rows {
		detail := names[row.DetailID]
		values := []interface{}{row.DetailID, detail.Cipher, detail.Name, row.Actual, row.Planned, row.Deviation}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("accounting-%d-%s.xlsx", workshopID, time.Now().Format("20060102"))
	return f, filename, nil
}

// spanDays [a, b]的含两端天数；b在a之前时为非正数
func spanDays(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}
