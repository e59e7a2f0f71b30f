package entity

// UsingInstruction 装入说明（零件的制造分解，BOM）。
// 一个零件至多有一条装入说明；没有的零件视为外购/原材料件。
type UsingInstruction struct {
	ID                   uint `json:"using_pk" gorm:"column:using_pk;primaryKey;autoIncrement"`
	DetailManufacturedID uint `json:"detail_manufactured_pk" gorm:"column:detail_manufactured_pk;not null;uniqueIndex"`

	DetailManufactured *Detail     `json:"detail_manufactured,omitempty" gorm:"foreignKey:DetailManufacturedID"`
	Lines              []UsingLine `json:"using_lines,omitempty" gorm:"foreignKey:UsingID"`
}

func (UsingInstruction) TableName() string {
	return "using_instruction"
}

// UsingLine 装入行：制造一个成品件需要amount个该组成件
type UsingLine struct {
	ID       uint `json:"using_line_pk" gorm:"column:using_line_pk;primaryKey;autoIncrement"`
	UsingID  uint `json:"using_pk" gorm:"column:using_pk;not null;index"`
	DetailID uint `json:"detail_pk" gorm:"column:detail_pk;not null;index"`
	Amount   int  `json:"amount" gorm:"column:amount;not null"`

	Detail *Detail `json:"detail,omitempty" gorm:"foreignKey:DetailID"`
}

func (UsingLine) TableName() string {
	return "using_line"
}
