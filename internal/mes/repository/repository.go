package repository

import "gorm.io/gorm"

// Repositories MES 仓库集合
type Repositories struct {
	Detail   *DetailRepository
	Workshop *WorkshopRepository
	Report   *ReportRepository
	Vedomost *VedomostRepository
	Using    *UsingRepository
	Program  *ProgramRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Detail:   NewDetailRepository(db),
		Workshop: NewWorkshopRepository(db),
		Report:   NewReportRepository(db),
		Vedomost: NewVedomostRepository(db),
		Using:    NewUsingRepository(db),
		Program:  NewProgramRepository(db),
	}
}
