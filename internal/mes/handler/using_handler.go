package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type UsingHandler struct {
	svc *service.UsingService
}

func NewUsingHandler(svc *service.UsingService) *UsingHandler {
	return &UsingHandler{svc: svc}
}

// List GET /using-instructions
func (h *UsingHandler) List(c *gin.Context) {
	instructions, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, instructions)
}

// Get GET /using-instructions/:id
func (h *UsingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	instruction, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, instruction)
}

// Create POST /using-instructions
func (h *UsingHandler) Create(c *gin.Context) {
	var input service.CreateUsingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	instruction, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, instruction)
}

// Delete DELETE /using-instructions/:id
func (h *UsingHandler) Delete(c *gin.Context) {
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

// AddLine POST /using-instructions/:id/lines
func (h *UsingHandler) AddLine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input service.UsingLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	instruction, err := h.svc.AddLine(c.Request.Context(), id, &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	OK(c, instruction)
}

// DeleteLine DELETE /using-lines/:id
func (h *UsingHandler) DeleteLine(c *gin.Context) {
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
