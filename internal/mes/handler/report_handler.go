package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// List GET /reports?workshop_sender_pk=
func (h *ReportHandler) List(c *gin.Context) {
	senderID, ok := parseUintQuery(c, "workshop_sender_pk")
	if !ok {
		return
	}
	reports, err := h.svc.List(c.Request.Context(), senderID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, reports)
}

// Get GET /reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	report, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, report)
}

// Create POST /reports
func (h *ReportHandler) Create(c *gin.Context) {
	var input service.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	report, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, report)
}

// Update PUT /reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.UpdateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	report, err := h.svc.Update(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, report)
}

// Delete DELETE /reports/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, nil)
}

// ListLines GET /report-lines?report_pk=
func (h *ReportHandler) ListLines(c *gin.Context) {
	reportID, ok := parseUintQuery(c, "report_pk")
	if !ok {
		return
	}
	lines, err := h.svc.ListLines(c.Request.Context(), reportID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, lines)
}

// GetLine GET /report-lines/:id
func (h *ReportHandler) GetLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	line, err := h.svc.GetLine(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, line)
}

// CreateLine POST /report-lines
func (h *ReportHandler) CreateLine(c *gin.Context) {
	var input service.ReportLineCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	line, err := h.svc.CreateLine(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, line)
}

// UpdateLine PUT /report-lines/:id
func (h *ReportHandler) UpdateLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.ReportLineUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	line, err := h.svc.UpdateLine(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, line)
}

// DeleteLine DELETE /report-lines/:id
func (h *ReportHandler) DeleteLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteLine(c.Request.Context(), id); err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, nil)
}
