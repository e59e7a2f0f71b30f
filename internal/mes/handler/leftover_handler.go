package handler

import (
	"errors"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type LeftoverHandler struct {
	svc *service.LeftoverService
}

func NewLeftoverHandler(svc *service.LeftoverService) *LeftoverHandler {
	return &LeftoverHandler{svc: svc}
}

// leftoverPayload 结存视图响应。面向用户的错误（缺参数、无盘存基准）
// 放在payload的error字段里随200返回，数组置空。
type leftoverPayload struct {
	Leftovers []service.LeftoverRow `json:"leftovers"`
	Stuck     []service.Demand      `json:"stuck"`
	Error     string                `json:"error,omitempty"`
}

func emptyLeftoverPayload(message string) leftoverPayload {
	return leftoverPayload{
		Leftovers: []service.LeftoverRow{},
		Stuck:     []service.Demand{},
		Error:     message,
	}
}

// Leftovers GET /leftovers?workshop_pk=&date=
// date缺省为当天
func (h *LeftoverHandler) Leftovers(c *gin.Context) {
	workshopID, ok := parseUintQuery(c, "workshop_pk")
	if !ok {
		return
	}
	if workshopID == nil {
		OK(c, emptyLeftoverPayload("missing required parameter: workshop_pk"))
		return
	}

	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	asOf := time.Now()
	if date != nil {
		asOf = *date
	}

	result, err := h.svc.Leftovers(c.Request.Context(), *workshopID, asOf)
	if err != nil {
		if errors.Is(err, service.ErrNoPriorVedomost) {
			OK(c, emptyLeftoverPayload(err.Error()))
			return
		}
		InternalError(c, err.Error())
		return
	}
	OK(c, leftoverPayload{Leftovers: result.Leftovers, Stuck: result.Stuck})
}
