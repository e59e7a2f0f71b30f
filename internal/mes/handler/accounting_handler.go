package handler

import (
	"errors"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type AccountingHandler struct {
	svc *service.AccountingService
}

func NewAccountingHandler(svc *service.AccountingService) *AccountingHandler {
	return &AccountingHandler{svc: svc}
}

// accountingPayload 计划核算响应，错误语义同结存视图
type accountingPayload struct {
	Rows  []service.AccountingRow `json:"rows"`
	Error string                  `json:"error,omitempty"`
}

func emptyAccountingPayload(message string) accountingPayload {
	return accountingPayload{Rows: []service.AccountingRow{}, Error: message}
}

// Accounting GET /accounting?workshop_pk=&start_date=&end_date=
// 两个日期都可省略
func (h *AccountingHandler) Accounting(c *gin.Context) {
	workshopID, ok := parseUintQuery(c, "workshop_pk")
	if !ok {
		return
	}
	if workshopID == nil {
		OK(c, emptyAccountingPayload("missing required parameter: workshop_pk"))
		return
	}
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	rows, err := h.svc.Accounting(c.Request.Context(), *workshopID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			OK(c, emptyAccountingPayload(err.Error()))
			return
		}
		InternalError(c, err.Error())
		return
	}
	OK(c, accountingPayload{Rows: rows})
}

// Export GET /accounting/export?workshop_pk=&start_date=&end_date=
func (h *AccountingHandler) Export(c *gin.Context) {
	workshopID, ok := parseUintQuery(c, "workshop_pk")
	if !ok {
		return
	}
	if workshopID == nil {
		BadRequest(c, "missing required parameter: workshop_pk")
		return
	}
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	f, filename, err := h.svc.Export(c.Request.Context(), *workshopID, start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
