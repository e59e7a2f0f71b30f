package entity

import "time"

// Vedomost 盘存清单。一经用于结存计算即视为不可变快照，
// 计算永远不会回写它。
type Vedomost struct {
	ID           uint      `json:"vedomost_pk" gorm:"column:vedomost_pk;primaryKey;autoIncrement"`
	DocNum       int       `json:"doc_num" gorm:"column:doc_num;not null"`
	CreationDate time.Time `json:"creation_date" gorm:"column:creation_date;type:date;not null;index"`
	WorkshopID   *uint     `json:"workshop_pk" gorm:"column:workshop_pk;index"`

	Workshop *Workshop      `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
	Lines    []VedomostLine `json:"vedomost_lines,omitempty" gorm:"foreignKey:VedomostID"`
}

func (Vedomost) TableName() string {
	return "vedomost"
}

// VedomostLine 盘存行，amount为实点数量
type VedomostLine struct {
	ID         uint `json:"vedomost_line_pk" gorm:"column:vedomost_line_pk;primaryKey;autoIncrement"`
	VedomostID uint `json:"vedomost_pk" gorm:"column:vedomost_pk;not null;index"`
	DetailID   uint `json:"detail_pk" gorm:"column:detail_pk;not null;index"`
	Amount     int  `json:"amount" gorm:"column:amount;not null;default:0"`

	Detail *Detail `json:"detail,omitempty" gorm:"foreignKey:DetailID"`
}

func (VedomostLine) TableName() string {
	return "vedomost_line"
}
