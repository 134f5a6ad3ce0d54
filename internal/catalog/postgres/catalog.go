package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/catalog"
	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetAllItems() ([]*catalogDatamodel.Item, error) {
	var items []*catalogDatamodel.Item
	err := r.db.Order("item_code ASC").Find(&items).Error
	return items, err
}

func (r *CatalogRepository) GetItemByCode(itemCode string) (*catalogDatamodel.Item, error) {
	var item catalogDatamodel.Item
	err := r.db.Where("item_code = ?", itemCode).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) CreateItem(item *catalogDatamodel.Item) error {
	err := r.db.Create(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateItemCode
		}
		return err
	}
	return nil
}

func (r *CatalogRepository) UpdateItem(item *catalogDatamodel.Item) error {
	return r.db.Save(item).Error
}

func (r *CatalogRepository) DeleteItem(itemCode string) error {
	res := r.db.Where("item_code = ?", itemCode).Delete(&catalogDatamodel.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrItemNotFound
	}
	return nil
}

func (r *CatalogRepository) GetAllSuppliers() ([]*catalogDatamodel.Supplier, error) {
	var suppliers []*catalogDatamodel.Supplier
	err := r.db.Order("supplier_id ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *CatalogRepository) GetSupplierByID(supplierID string) (*catalogDatamodel.Supplier, error) {
	var supplier catalogDatamodel.Supplier
	err := r.db.Where("supplier_id = ?", supplierID).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *CatalogRepository) CreateSupplier(supplier *catalogDatamodel.Supplier) error {
	err := r.db.Create(supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateSupplier
		}
		return err
	}
	return nil
}

func (r *CatalogRepository) UpdateSupplier(supplier *catalogDatamodel.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *CatalogRepository) DeleteSupplier(supplierID string) error {
	res := r.db.Where("supplier_id = ?", supplierID).Delete(&catalogDatamodel.Supplier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrSupplierNotFound
	}
	return nil
}
