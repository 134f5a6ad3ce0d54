package catalog

import (
	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/core/common/validation"
)

type CreateItemDTO struct {
	ItemCode string  `json:"item_code"`
	ItemName string  `json:"item_name"`
	Category string  `json:"category"`
	UOM      string  `json:"uom"`
	ItemRate float64 `json:"item_rate"`
}

func (d CreateItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("item_code", d.ItemCode).Required().MaxLength(100)
	v.Field("item_name", d.ItemName).Required().MaxLength(300)
	v.Field("item_rate", d.ItemRate).NonNegativeFloat(internal.ErrCodeInvalidRate)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateItemDTO applies a partial update: nil means leave the field
// alone, a non-nil zero value overwrites.
type UpdateItemDTO struct {
	ItemName *string  `json:"item_name"`
	Category *string  `json:"category"`
	UOM      *string  `json:"uom"`
	ItemRate *float64 `json:"item_rate"`
}

func (d UpdateItemDTO) Validate() error {
	if d.ItemRate != nil && *d.ItemRate < 0 {
		return internal.NewValidationFieldError("item_rate", "item_rate must not be negative", internal.ErrCodeInvalidRate)
	}
	if d.ItemName != nil && *d.ItemName == "" {
		return internal.NewValidationFieldError("item_name", "item_name must not be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

type CreateSupplierDTO struct {
	SupplierID    string `json:"supplier_id"`
	SupplierName  string `json:"supplier_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
}

func (d CreateSupplierDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("supplier_id", d.SupplierID).Required().MaxLength(100)
	v.Field("supplier_name", d.SupplierName).Required().MaxLength(300)
	v.Field("email", d.Email).Email()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateSupplierDTO struct {
	SupplierName  *string `json:"supplier_name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Country       *string `json:"country"`
	State         *string `json:"state"`
	City          *string `json:"city"`
	Address       *string `json:"address"`
	Pincode       *string `json:"pincode"`
}

func (d UpdateSupplierDTO) Validate() error {
	if d.SupplierName != nil && *d.SupplierName == "" {
		return internal.NewValidationFieldError("supplier_name", "supplier_name must not be empty", internal.ErrCodeValidationFailed)
	}
	if d.Email != nil && *d.Email != "" {
		v := validation.NewValidator()
		v.Field("email", *d.Email).Email()
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ItemsResponse struct {
	Items []*Item `json:"items"`
}

type SuppliersResponse struct {
	Suppliers []*Supplier `json:"suppliers"`
}
