package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type VedomostHandler struct {
	svc *service.VedomostService
}

func NewVedomostHandler(svc *service.VedomostService) *VedomostHandler {
	return &VedomostHandler{svc: svc}
}

// List GET /vedomosts?workshop_pk=
func (h *VedomostHandler) List(c *gin.Context) {
	workshopID, ok := parseUintQuery(c, "workshop_pk")
	if !ok {
		return
	}
	vedomosts, err := h.svc.List(c.Request.Context(), workshopID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, vedomosts)
}

// Get GET /vedomosts/:id
func (h *VedomostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vedomost, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, vedomost)
}

// Create POST /vedomosts
func (h *VedomostHandler) Create(c *gin.Context) {
	var input service.CreateVedomostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	vedomost, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, vedomost)
}

// Update PUT /vedomosts/:id
func (h *VedomostHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.UpdateVedomostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	vedomost, err := h.svc.Update(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, vedomost)
}

// Delete DELETE /vedomosts/:id
func (h *VedomostHandler) Delete(c *gin.Context) {
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

// ListLines GET /vedomost-lines?vedomost_pk=
func (h *VedomostHandler) ListLines(c *gin.Context) {
	vedomostID, ok := parseUintQuery(c, "vedomost_pk")
	if !ok {
		return
	}
	lines, err := h.svc.ListLines(c.Request.Context(), vedomostID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, lines)
}

// GetLine GET /vedomost-lines/:id
func (h *VedomostHandler) GetLine(c *gin.Context) {
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

// CreateLine POST /vedomost-lines
func (h *VedomostHandler) CreateLine(c *gin.Context) {
	var input service.VedomostLineCreateInput
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

// UpdateLine PUT /vedomost-lines/:id
func (h *VedomostHandler) UpdateLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.VedomostLineUpdateInput
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

// DeleteLine DELETE /vedomost-lines/:id
func (h *VedomostHandler) DeleteLine(c *gin.Context) {
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

// AddExplodedLines POST /vedomosts/:id/exploded-lines
// 把成品件完全分解为原材料件后批量写入盘存行
func (h *VedomostHandler) AddExplodedLines(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.ExplodedLinesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	lines, err := h.svc.AddExplodedLines(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, lines)
}
