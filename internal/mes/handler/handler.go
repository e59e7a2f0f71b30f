package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// Handlers MES HTTP处理器集合
type Handlers struct {
	Detail     *DictionaryHandler
	Report     *ReportHandler
	Vedomost   *VedomostHandler
	Using      *UsingHandler
	Program    *ProgramHandler
	Leftover   *LeftoverHandler
	Accounting *AccountingHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Detail:     NewDictionaryHandler(services.Detail, services.Workshop),
		Report:     NewReportHandler(services.Report),
		Vedomost:   NewVedomostHandler(services.Vedomost),
		Using:      NewUsingHandler(services.Using),
		Program:    NewProgramHandler(services.Program),
		Leftover:   NewLeftoverHandler(services.Leftover),
		Accounting: NewAccountingHandler(services.Accounting),
	}
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": data})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": message})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": message})
}

// dateFormat 查询参数与响应采用的日期格式
const dateFormat = "2006-01-02"

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		BadRequest(c, "无效的"+name)
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery 可选的整型查询参数，缺省返回nil
func parseUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		BadRequest(c, "无效的"+name)
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// parseDateQuery 可选的日期查询参数（YYYY-MM-DD），缺省返回nil
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateFormat, raw)
	if err != nil {
		BadRequest(c, "无效的"+name+"，格式应为YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}
