package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupReportTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	h := NewReportHandler(service.NewReportService(repos.Report))

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1/mes")
	reports := api.Group("/reports")
	{
		reports.GET("", h.List)
		reports.POST("", h.Create)
		reports.GET("/:id", h.Get)
		reports.PUT("/:id", h.Update)
		reports.DELETE("/:id", h.Delete)
	}
	lines := api.Group("/report-lines")
	{
		lines.GET("", h.ListLines)
		lines.POST("", h.CreateLine)
		lines.PUT("/:id", h.UpdateLine)
		lines.DELETE("/:id", h.DeleteLine)
	}

	return r, db
}

func TestReportCRUD(t *testing.T) {
	r, db := setupReportTest(t)
	token := testutil.DefaultTestToken()

	sender := testutil.SeedWorkshop(t, db, "机加车间")
	receiver := testutil.SeedWorkshop(t, db, "装配车间")
	detail := testutil.SeedDetail(t, db, "WH-01", "车轮")

	// 创建带行的转运单
	w := testutil.DoRequest(r, "POST", "/api/v1/mes/reports", map[string]interface{}{
		"doc_num":            101,
		"date":               "2024-03-10T00:00:00Z",
		"workshop_sender_pk": sender.ID,
		"report_lines": []map[string]interface{}{
			{"detail_pk": detail.ID, "produced": 12, "workshop_receiver_pk": receiver.ID},
		},
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create report: status %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	reportID := uint(data["report_pk"].(float64))
	createdLines := data["report_lines"].([]interface{})
	if len(createdLines) != 1 {
		t.Fatalf("expected 1 line on created report, got %d", len(createdLines))
	}

	// 按发出车间过滤列表
	w = testutil.DoRequest(r, "GET", fmt.Sprintf("/api/v1/mes/reports?workshop_sender_pk=%d", sender.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list reports: status %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	if got := len(resp["data"].([]interface{})); got != 1 {
		t.Errorf("filtered list returned %d reports, want 1", got)
	}
	w = testutil.DoRequest(r, "GET", fmt.Sprintf("/api/v1/mes/reports?workshop_sender_pk=%d", receiver.ID), nil, token)
	resp = testutil.ParseResponse(w)
	if got := len(resp["data"].([]interface{})); got != 0 {
		t.Errorf("list for other sender returned %d reports, want 0", got)
	}

	// 更新单头
	w = testutil.DoRequest(r, "PUT", fmt.Sprintf("/api/v1/mes/reports/%d", reportID), map[string]interface{}{
		"doc_num": 202,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update report: status %d, body %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if int(data["doc_num"].(float64)) != 202 {
		t.Errorf("doc_num after update = %v, want 202", data["doc_num"])
	}
	if got := len(data["report_lines"].([]interface{})); got != 1 {
		t.Errorf("update dropped lines: %d remaining, want 1", got)
	}

	// 追加一行并按单号过滤
	w = testutil.DoRequest(r, "POST", "/api/v1/mes/report-lines", map[string]interface{}{
		"report_pk": reportID,
		"detail_pk": detail.ID,
		"produced":  3,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create line: status %d, body %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(r, "GET", fmt.Sprintf("/api/v1/mes/report-lines?report_pk=%d", reportID), nil, token)
	resp = testutil.ParseResponse(w)
	if got := len(resp["data"].([]interface{})); got != 2 {
		t.Errorf("line list returned %d lines, want 2", got)
	}

	// 删除后查询404
	w = testutil.DoRequest(r, "DELETE", fmt.Sprintf("/api/v1/mes/reports/%d", reportID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete report: status %d", w.Code)
	}
	w = testutil.DoRequest(r, "GET", fmt.Sprintf("/api/v1/mes/reports/%d", reportID), nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted report: status %d, want 404", w.Code)
	}
}

func TestReportRequiresAuth(t *testing.T) {
	r, _ := setupReportTest(t)

	w := testutil.DoRequest(r, "GET", "/api/v1/mes/reports", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated request: status %d, want 401", w.Code)
	}
}

func TestCreateReportLineRejectsMissingReport(t *testing.T) {
	r, db := setupReportTest(t)
	token := testutil.DefaultTestToken()
	detail := testutil.SeedDetail(t, db, "FR-01", "车架")

	w := testutil.DoRequest(r, "POST", "/api/v1/mes/report-lines", map[string]interface{}{
		"report_pk": 99999,
		"detail_pk": detail.ID,
		"produced":  1,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("line for missing report: status %d, want 400", w.Code)
	}
}
