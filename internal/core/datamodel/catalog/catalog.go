package catalog

import "time"

type Item struct {
	ItemCode  string    `gorm:"column:item_code;primaryKey"`
	ItemName  string    `gorm:"column:item_name;not null"`
	Category  string    `gorm:"column:category"`
	UOM       string    `gorm:"column:uom"`
	ItemRate  float64   `gorm:"column:item_rate"`
	CreatedBy string    `gorm:"column:created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}

type Supplier struct {
	SupplierID    string    `gorm:"column:supplier_id;primaryKey"`
	SupplierName  string    `gorm:"column:supplier_name;not null"`
	ContactPerson string    `gorm:"column:contact_person"`
	Email         string    `gorm:"column:email"`
	Phone         string    `gorm:"column:phone"`
	Country       string    `gorm:"column:country"`
	State         string    `gorm:"column:state"`
	City          string    `gorm:"column:city"`
	Address       string    `gorm:"column:address"`
	Pincode       string    `gorm:"column:pincode"`
	CreatedBy     string    `gorm:"column:created_by"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
