package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

type fakeProgramStore struct {
	programs []entity.ProductionProgram
}

func (f *fakeProgramStore) Overlapping(ctx context.Context, workshopID uint, from, to time.Time) ([]entity.ProductionProgram, error) {
	return f.programs, nil
}

type fakeDetailStore struct {
	details map[uint]entity.Detail
}

func (f *fakeDetailStore) FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.Detail, error) {
	return f.details, nil
}

func programWith(start, end time.Time, lines ...entity.ProgramLine) entity.ProductionProgram {
	return entity.ProductionProgram{StartDate: start, EndDate: end, CreationDate: start, WorkshopID: 1, Lines: lines}
}

func newAccountingService(reports *fakeReportStore, programs *fakeProgramStore) *AccountingService {
	return NewAccountingService(reports, programs, &fakeDetailStore{details: map[uint]entity.Detail{}})
}

func TestAccountingProratesPlannedByOverlapDays(t *testing.T) {
	// 大纲1月1日至10日共10天计划100个；查询窗口1月1日至5日重叠5天 → 计划50
	svc := newAccountingService(
		&fakeReportStore{sent: []entity.ReportLine{{DetailID: 1, Produced: 60}}},
		&fakeProgramStore{programs: []entity.ProductionProgram{
			programWith(date(2024, 1, 1), date(2024, 1, 10), entity.ProgramLine{DetailID: 1, Amount: 100}),
		}},
	)

	start := date(2024, 1, 1)
	end := date(2024, 1, 5)
	rows, err := svc.Accounting(context.Background(), 1, &start, &end)
	if err != nil {
		t.Fatalf("Accounting failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Planned != 50 {
		t.Errorf("planned = %d, want 50", rows[0].Planned)
	}
	if rows[0].Actual != 60 {
		t.Errorf("actual = %d, want 60", rows[0].Actual)
	}
	if rows[0].Deviation != 10 {
		t.Errorf("deviation = %d, want 10", rows[0].Deviation)
	}
}

func TestAccountingProrationRounds(t *testing.T) {
	// 3天大纲计划10个，重叠1天 → 10×1/3 = 3.33 四舍五入为3
	svc := newAccountingService(
		&fakeReportStore{},
		&fakeProgramStore{programs: []entity.ProductionProgram{
			programWith(date(2024, 1, 1), date(2024, 1, 3), entity.ProgramLine{DetailID: 1, Amount: 10}),
		}},
	)

	start := date(2024, 1, 1)
	end := date(2024, 1, 1)
	rows, err := svc.Accounting(context.Background(), 1, &start, &end)
	if err != nil {
		t.Fatalf("Accounting failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Planned != 3 {
		t.Fatalf("rows = %+v, want planned 3", rows)
	}
}

func TestAccountingDefaultsCoverWholeProgram(t *testing.T) {
	// 不给日期时窗口覆盖整张大纲，折算比例为1
	svc := newAccountingService(
		&fakeReportStore{},
		&fakeProgramStore{programs: []entity.ProductionProgram{
			programWith(date(2024, 1, 1), date(2024, 1, 31), entity.ProgramLine{DetailID: 1, Amount: 100}),
		}},
	)

	rows, err := svc.Accounting(context.Background(), 1, nil, nil)
	if err != nil {
		t.Fatalf("Accounting failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Planned != 100 {
		t.Fatalf("rows = %+v, want planned 100", rows)
	}
}

func TestAccountingInvalidDateRange(t *testing.T) {
	svc := newAccountingService(&fakeReportStore{}, &fakeProgramStore{})

	start := date(2024, 2, 1)
	end := date(2024, 1, 1)
	_, err := svc.Accounting(context.Background(), 1, &start, &end)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestAccountingFillsMissingSideWithZero(t *testing.T) {
	// 零件1只有实际产量，零件2只有计划产量
	svc := newAccountingService(
		&fakeReportStore{sent: []entity.ReportLine{{DetailID: 1, Produced: 5}}},
		&fakeProgramStore{programs: []entity.ProductionProgram{
			programWith(date(2024, 1, 1), date(2024, 1, 10), entity.ProgramLine{DetailID: 2, Amount: 40}),
		}},
	)

	start := date(2024, 1, 1)
	end := date(2024, 1, 10)
	rows, err := svc.Accounting(context.Background(), 1, &start, &end)
	if err != nil {
		t.Fatalf("Accounting failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0] != (AccountingRow{DetailID: 1, Actual: 5, Planned: 0, Deviation: 5}) {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1] != (AccountingRow{DetailID: 2, Actual: 0, Planned: 40, Deviation: -40}) {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestSpanDaysInclusive(t *testing.T) {
	if got := spanDays(date(2024, 1, 1), date(2024, 1, 10)); got != 10 {
		t.Errorf("spanDays = %d, want 10", got)
	}
	if got := spanDays(date(2024, 1, 5), date(2024, 1, 5)); got != 1 {
		t.Errorf("same-day spanDays = %d, want 1", got)
	}
	if got := spanDays(date(2024, 1, 10), date(2024, 1, 1)); got > 0 {
		t.Errorf("inverted spanDays = %d, want non-positive", got)
	}
}

func TestAccountingExportBuildsWorkbook(t *testing.T) {
	svc := NewAccountingService(
		&fakeReportStore{sent: []entity.ReportLine{{DetailID: 1, Produced: 5}}},
		&fakeProgramStore{},
		&fakeDetailStore{details: map[uint]entity.Detail{
			1: {ID: 1, Name: "Wheel", Cipher: "WH-01"},
		}},
	)

	f, filename, err := svc.Export(context.Background(), 1, nil, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	if filename == "" {
		t.Error("expected non-empty filename")
	}
	name, err := f.GetCellValue("核算", "C2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if name != "Wheel" {
		t.Errorf("C2 = %q, want \"Wheel\"", name)
	}
}
