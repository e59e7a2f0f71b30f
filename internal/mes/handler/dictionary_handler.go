package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// DictionaryHandler 零件与车间基础数据（只读）
type DictionaryHandler struct {
	details   *service.DetailService
	workshops *service.WorkshopService
}

func NewDictionaryHandler(details *service.DetailService, workshops *service.WorkshopService) *DictionaryHandler {
	return &DictionaryHandler{details: details, workshops: workshops}
}

// ListDetails GET /details?keyword=
func (h *DictionaryHandler) ListDetails(c *gin.Context) {
	details, err := h.details.List(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, details)
}

// GetDetail GET /details/:id
func (h *DictionaryHandler) GetDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.details.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, detail)
}

// ListWorkshops GET /workshops?keyword=
func (h *DictionaryHandler) ListWorkshops(c *gin.Context) {
	workshops, err := h.workshops.List(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	OK(c, workshops)
}

// GetWorkshop GET /workshops/:id
func (h *DictionaryHandler) GetWorkshop(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	workshop, err := h.workshops.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, err.Error())
		return
	}
	OK(c, workshop)
}
