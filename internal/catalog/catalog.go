package catalog

import (
	"time"

	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
)

// Item is a master catalog entry. ItemCode is caller-chosen and unique;
// ledger entries reference it and snapshot the name at write time.
type Item struct {
	ItemCode  string    `json:"item_code"`
	ItemName  string    `json:"item_name"`
	Category  string    `json:"category"`
	UOM       string    `json:"uom"`
	ItemRate  float64   `json:"item_rate"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Supplier struct {
	SupplierID    string    `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Country       string    `json:"country"`
	State         string    `json:"state"`
	City          string    `json:"city"`
	Address       string    `json:"address"`
	Pincode       string    `json:"pincode"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ItemToDataModel(i *Item) *catalogDatamodel.Item {
	return &catalogDatamodel.Item{
		ItemCode:  i.ItemCode,
		ItemName:  i.ItemName,
		Category:  i.Category,
		UOM:       i.UOM,
		ItemRate:  i.ItemRate,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func ItemFromDataModel(dm *catalogDatamodel.Item) *Item {
	return &Item{
		ItemCode:  dm.ItemCode,
		ItemName:  dm.ItemName,
		Category:  dm.Category,
		UOM:       dm.UOM,
		ItemRate:  dm.ItemRate,
		CreatedBy: dm.CreatedBy,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}

func SupplierToDataModel(s *Supplier) *catalogDatamodel.Supplier {
	return &catalogDatamodel.Supplier{
		SupplierID:    s.SupplierID,
		SupplierName:  s.SupplierName,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Country:       s.Country,
		State:         s.State,
		City:          s.City,
		Address:       s.Address,
		Pincode:       s.Pincode,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func SupplierFromDataModel(dm *catalogDatamodel.Supplier) *Supplier {
	return &Supplier{
		SupplierID:    dm.SupplierID,
		SupplierName:  dm.SupplierName,
		ContactPerson: dm.ContactPerson,
		Email:         dm.Email,
		Phone:         dm.Phone,
		Country:       dm.Country,
		State:         dm.State,
		City:          dm.City,
		Address:       dm.Address,
		Pincode:       dm.Pincode,
		CreatedBy:     dm.CreatedBy,
		CreatedAt:     dm.CreatedAt,
		UpdatedAt:     dm.UpdatedAt,
	}
}
