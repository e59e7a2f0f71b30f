package service

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/redis/go-redis/v9"
)

// Services MES 服务集合
type Services struct {
	Detail     *DetailService
	Workshop   *WorkshopService
	Report     *ReportService
	Vedomost   *VedomostService
	Using      *UsingService
	Program    *ProgramService
	Leftover   *LeftoverService
	Accounting *AccountingService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client) *Services {
	return &Services{
		Detail:     NewDetailService(repos.Detail),
		Workshop:   NewWorkshopService(repos.Workshop),
		Report:     NewReportService(repos.Report),
		Vedomost:   NewVedomostService(repos.Vedomost, repos.Using),
		Using:      NewUsingService(repos.Using),
		Program:    NewProgramService(repos.Program),
		Leftover:   NewLeftoverService(repos.Vedomost, repos.Report, repos.Using, rdb),
		Accounting: NewAccountingService(repos.Report, repos.Program, repos.Detail),
	}
}
