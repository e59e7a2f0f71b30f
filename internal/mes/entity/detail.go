package entity

// Detail 零件（不可变基础数据，经由管理端维护）
type Detail struct {
	ID     uint   `json:"detail_pk" gorm:"column:detail_pk;primaryKey;autoIncrement"`
	Name   string `json:"detail_name" gorm:"column:detail_name;size:100;not null"`
	Cipher string `json:"cipher_detail" gorm:"column:cipher_detail;size:20"`
}

func (Detail) TableName() string {
	return "detail"
}

// Workshop 车间（不可变基础数据）
type Workshop struct {
	ID     uint   `json:"workshop_pk" gorm:"column:workshop_pk;primaryKey;autoIncrement"`
	Name   string `json:"workshop_name" gorm:"column:workshop_name;size:100;not null"`
	Cipher string `json:"cipher_workshop" gorm:"column:cipher_workshop;size:20"`
}

func (Workshop) TableName() string {
	return "workshop"
}
