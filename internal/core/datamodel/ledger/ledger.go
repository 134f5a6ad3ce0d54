package ledger

import "time"

type InwardEntry struct {
	EntryID         string    `gorm:"column:entry_id;primaryKey"`
	Date            string    `gorm:"column:date;not null"`
	ItemCode        string    `gorm:"column:item_code;index;not null"`
	ItemDescription string    `gorm:"column:item_description"`
	InwardQty       float64   `gorm:"column:inward_qty;not null"`
	InwardRate      float64   `gorm:"column:inward_rate"`
	InwardValue     float64   `gorm:"column:inward_value"`
	Supplier        string    `gorm:"column:supplier"`
	RefNo           string    `gorm:"column:ref_no"`
	CreatedBy       string    `gorm:"column:created_by;index"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (InwardEntry) TableName() string {
	return "inward_entries"
}

type IssueEntry struct {
	EntryID         string    `gorm:"column:entry_id;primaryKey"`
	Date            string    `gorm:"column:date;not null"`
	ItemCode        string    `gorm:"column:item_code;index;not null"`
	ItemDescription string    `gorm:"column:item_description"`
	IssuedQty       float64   `gorm:"column:issued_qty;not null"`
	CreatedBy       string    `gorm:"column:created_by;index"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (IssueEntry) TableName() string {
	return "issue_entries"
}
