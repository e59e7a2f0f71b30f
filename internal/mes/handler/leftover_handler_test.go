package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupComputedViewTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	leftover := NewLeftoverHandler(service.NewLeftoverService(repos.Vedomost, repos.Report, repos.Using, nil))
	accounting := NewAccountingHandler(service.NewAccountingService(repos.Report, repos.Program, repos.Detail))

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1/mes")
	api.GET("/leftovers", leftover.Leftovers)
	api.GET("/accounting", accounting.Accounting)

	return r, db
}

func dateOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeftoversEndpoint(t *testing.T) {
	r, db := setupComputedViewTest(t)
	token := testutil.DefaultTestToken()

	workshop := testutil.SeedWorkshop(t, db, "装配车间")
	other := testutil.SeedWorkshop(t, db, "机加车间")
	bike := testutil.SeedDetail(t, db, "BK-01", "自行车")
	wheel := testutil.SeedDetail(t, db, "WH-01", "车轮")

	// 自行车 = 2×车轮
	instruction := &entity.UsingInstruction{
		DetailManufacturedID: bike.ID,
		Lines:                []entity.UsingLine{{DetailID: wheel.ID, Amount: 2}},
	}
	if err := db.Create(instruction).Error; err != nil {
		t.Fatalf("seed instruction: %v", err)
	}

	// 3月1日盘存：10个车轮
	vedomost := &entity.Vedomost{
		DocNum:       1,
		CreationDate: dateOf(2024, 3, 1),
		WorkshopID:   &workshop.ID,
		Lines:        []entity.VedomostLine{{DetailID: wheel.ID, Amount: 10}},
	}
	if err := db.Create(vedomost).Error; err != nil {
		t.Fatalf("seed vedomost: %v", err)
	}

	// 3月5日发出3辆自行车
	report := &entity.Report{
		DocNum:   2,
		Date:     dateOf(2024, 3, 5),
		SenderID: &workshop.ID,
		Lines:    []entity.ReportLine{{DetailID: bike.ID, Produced: 3, ReceiverID: &other.ID}},
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}

	w := testutil.DoRequest(r, "GET",
		fmt.Sprintf("/api/v1/mes/leftovers?workshop_pk=%d&date=2024-03-10", workshop.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("leftovers: status %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	leftovers := data["leftovers"].([]interface{})
	if len(leftovers) != 1 {
		t.Fatalf("leftovers = %v, want 1 row", leftovers)
	}
	row := leftovers[0].(map[string]interface{})
	// 10 − 3×2 = 4 个车轮
	if uint(row["detail_pk"].(float64)) != wheel.ID || int(row["amount"].(float64)) != 4 {
		t.Errorf("leftover row = %v, want wheel ×4", row)
	}
	if stuck := data["stuck"].([]interface{}); len(stuck) != 0 {
		t.Errorf("stuck = %v, want empty", stuck)
	}
}

func TestLeftoversEndpointNoPriorVedomost(t *testing.T) {
	r, db := setupComputedViewTest(t)
	token := testutil.DefaultTestToken()
	workshop := testutil.SeedWorkshop(t, db, "装配车间")

	w := testutil.DoRequest(r, "GET",
		fmt.Sprintf("/api/v1/mes/leftovers?workshop_pk=%d&date=2024-03-10", workshop.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("leftovers without vedomost: status %d, want 200", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["error"] == nil || data["error"].(string) == "" {
		t.Error("expected error message in payload")
	}
	if got := len(data["leftovers"].([]interface{})); got != 0 {
		t.Errorf("leftovers = %d rows, want 0", got)
	}
}

func TestLeftoversEndpointMissingWorkshop(t *testing.T) {
	// 缺workshop_pk不落库，走空payload分支
	leftover := NewLeftoverHandler(service.NewLeftoverService(nil, nil, nil, nil))
	r := testutil.SetupRouter()
	testutil.AuthGroup(r, "/api/v1/mes").GET("/leftovers", leftover.Leftovers)

	w := testutil.DoRequest(r, "GET", "/api/v1/mes/leftovers", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("missing workshop_pk: status %d, want 200", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["error"] == nil {
		t.Error("expected error message in payload")
	}
}

func TestAccountingEndpoint(t *testing.T) {
	r, db := setupComputedViewTest(t)
	token := testutil.DefaultTestToken()

	workshop := testutil.SeedWorkshop(t, db, "机加车间")
	receiver := testutil.SeedWorkshop(t, db, "装配车间")
	wheel := testutil.SeedDetail(t, db, "WH-01", "车轮")

	// 1月1日至10日计划100个车轮
	program := &entity.ProductionProgram{
		StartDate:    dateOf(2024, 1, 1),
		EndDate:      dateOf(2024, 1, 10),
		CreationDate: dateOf(2023, 12, 25),
		WorkshopID:   workshop.ID,
		Lines:        []entity.ProgramLine{{DetailID: wheel.ID, Amount: 100}},
	}
	if err := db.Create(program).Error; err != nil {
		t.Fatalf("seed program: %v", err)
	}

	// 窗口内实际发出60个
	report := &entity.Report{
		DocNum:   3,
		Date:     dateOf(2024, 1, 3),
		SenderID: &workshop.ID,
		Lines:    []entity.ReportLine{{DetailID: wheel.ID, Produced: 60, ReceiverID: &receiver.ID}},
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}

	// 窗口1月1日至5日：计划折算 100×5/10 = 50
	w := testutil.DoRequest(r, "GET",
		fmt.Sprintf("/api/v1/mes/accounting?workshop_pk=%d&start_date=2024-01-01&end_date=2024-01-05", workshop.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("accounting: status %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want 1", rows)
	}
	row := rows[0].(map[string]interface{})
	if int(row["actual"].(float64)) != 60 || int(row["planned"].(float64)) != 50 || int(row["deviation"].(float64)) != 10 {
		t.Errorf("row = %v, want actual 60 planned 50 deviation 10", row)
	}
}

func TestAccountingEndpointInvalidRange(t *testing.T) {
	r, db := setupComputedViewTest(t)
	token := testutil.DefaultTestToken()
	workshop := testutil.SeedWorkshop(t, db, "机加车间")

	w := testutil.DoRequest(r, "GET",
		fmt.Sprintf("/api/v1/mes/accounting?workshop_pk=%d&start_date=2024-02-01&end_date=2024-01-01", workshop.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("invalid range: status %d, want 200", w.Code)
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["error"] == nil {
		t.Error("expected error message in payload")
	}
	if got := len(data["rows"].([]interface{})); got != 0 {
		t.Errorf("rows = %d, want 0", got)
	}
}
