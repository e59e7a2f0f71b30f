package entity

import "time"

// ProductionProgram 生产大纲：车间在[StartDate, EndDate]区间内的计划产量
type ProductionProgram struct {
	ID           uint      `json:"production_program_pk" gorm:"column:production_program_pk;primaryKey;autoIncrement"`
	StartDate    time.Time `json:"start_date" gorm:"column:start_date;type:date;not null;index"`
	EndDate      time.Time `json:"end_date" gorm:"column:end_date;type:date;not null;index"`
	CreationDate time.Time `json:"creation_date" gorm:"column:creation_date;type:date;not null"`
	WorkshopID   uint      `json:"workshop_pk" gorm:"column:workshop_pk;not null;index"`

	Workshop *Workshop     `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
	Lines    []ProgramLine `json:"program_lines,omitempty" gorm:"foreignKey:ProgramID"`
}

func (ProductionProgram) TableName() string {
	return "production_program_by_month"
}

// ProgramLine 大纲行
type ProgramLine struct {
	ID        uint `json:"program_line_pk" gorm:"column:program_line_pk;primaryKey;autoIncrement"`
	ProgramID uint `json:"production_program_pk" gorm:"column:production_program_pk;not null;index"`
	DetailID  uint `json:"detail_pk" gorm:"column:detail_pk;not null;index"`
	Amount    int  `json:"amount" gorm:"column:amount;not null"`

	Detail *Detail `json:"detail,omitempty" gorm:"foreignKey:DetailID"`
}

func (ProgramLine) TableName() string {
	return "program_line"
}
