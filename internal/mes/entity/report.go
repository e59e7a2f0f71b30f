package entity

import "time"

// Report 跨车间转运单。发出车间固定在单头，
// 收货车间记在每一行上（行级字段为准）。
type Report struct {
	ID       uint      `json:"report_pk" gorm:"column:report_pk;primaryKey;autoIncrement"`
	DocNum   int       `json:"doc_num" gorm:"column:doc_num;not null"`
	Date     time.Time `json:"date" gorm:"column:date;type:date;not null;index"`
	SenderID *uint     `json:"workshop_sender_pk" gorm:"column:workshop_sender_pk;index"`

	Sender *Workshop    `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Lines  []ReportLine `json:"report_lines,omitempty" gorm:"foreignKey:ReportID"`
}

func (Report) TableName() string {
	return "report"
}

// ReportLine 转运单行
type ReportLine struct {
	ID         uint  `json:"report_line_pk" gorm:"column:report_line_pk;primaryKey;autoIncrement"`
	ReportID   uint  `json:"report_pk" gorm:"column:report_pk;not null;index"`
	DetailID   uint  `json:"detail_pk" gorm:"column:detail_pk;not null;index"`
	Produced   int   `json:"produced" gorm:"column:produced;not null;default:0"`
	ReceiverID *uint `json:"workshop_receiver_pk" gorm:"column:workshop_receiver_pk;index"`

	Detail   *Detail   `json:"detail,omitempty" gorm:"foreignKey:DetailID"`
	Receiver *Workshop `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

func (ReportLine) TableName() string {
	return "report_line"
}
