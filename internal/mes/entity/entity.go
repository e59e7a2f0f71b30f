package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有MES表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&Detail{},
		&Workshop{},

		// 转运单
		&Report{},
		&ReportLine{},

		// 盘存
		&Vedomost{},
		&VedomostLine{},

		// 装入说明（BOM）
		&UsingInstruction{},
		&UsingLine{},

		// 生产大纲
		&ProductionProgram{},
		&ProgramLine{},
	)
}
