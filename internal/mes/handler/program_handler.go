package handler

import (
	"errors"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type ProgramHandler struct {
	svc *service.ProgramService
}

func NewProgramHandler(svc *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{svc: svc}
}

// List GET /programs?workshop_pk=
func (h *ProgramHandler) List(c *gin.Context) {
	workshopID, ok := parseUintQuery(c, "workshop_pk")
	if !ok {
		return
	}
	programs, err := h.svc.List(c.Request.Context(), workshopID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, programs)
}

// Get GET /programs/:id
func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	program, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, program)
}

// Create POST /programs
func (h *ProgramHandler) Create(c *gin.Context) {
	var input service.CreateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	program, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	OK(c, program)
}

// Update PUT /programs/:id
func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.UpdateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	program, err := h.svc.Update(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, program)
}

// Delete DELETE /programs/:id
func (h *ProgramHandler) Delete(c *gin.Context) {
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

// AddLine POST /programs/:id/lines
func (h *ProgramHandler) AddLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.ProgramLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	program, err := h.svc.AddLine(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, program)
}

// DeleteLine DELETE /program-lines/:id
func (h *ProgramHandler) DeleteLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteLine(c.Request.Context(), id); err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, nil)
}
