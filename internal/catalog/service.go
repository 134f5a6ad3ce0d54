package catalog

import (
	"log/slog"
	"time"

	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	GetAllItems() ([]*catalogDatamodel.Item, error)
	GetItemByCode(itemCode string) (*catalogDatamodel.Item, error)
	CreateItem(item *catalogDatamodel.Item) error
	UpdateItem(item *catalogDatamodel.Item) error
	DeleteItem(itemCode string) error

	GetAllSuppliers() ([]*catalogDatamodel.Supplier, error)
	GetSupplierByID(supplierID string) (*catalogDatamodel.Supplier, error)
	CreateSupplier(supplier *catalogDatamodel.Supplier) error
	UpdateSupplier(supplier *catalogDatamodel.Supplier) error
	DeleteSupplier(supplierID string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllItems() ([]*Item, error) {
	rows, err := s.repo.GetAllItems()
	if err != nil {
		s.logger.Error("failed to list items", "error", err)
		return nil, err
	}
	items := make([]*Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, ItemFromDataModel(row))
	}
	return items, nil
}

func (s *Service) GetItem(itemCode string) (*Item, error) {
	dm, err := s.repo.GetItemByCode(itemCode)
	if err != nil {
		return nil, err
	}
	return ItemFromDataModel(dm), nil
}

func (s *Service) CreateItem(actorID string, dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm := &catalogDatamodel.Item{
		ItemCode:  dto.ItemCode,
		ItemName:  dto.ItemName,
		Category:  dto.Category,
		UOM:       dto.UOM,
		ItemRate:  dto.ItemRate,
		CreatedBy: actorID,
	}
	if err := s.repo.CreateItem(dm); err != nil {
		return nil, err
	}

	s.logger.Info("item created", "item_code", dm.ItemCode, "created_by", actorID)
	return ItemFromDataModel(dm), nil
}

func (s *Service) UpdateItem(itemCode string, dto UpdateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetItemByCode(itemCode)
	if err != nil {
		return nil, err
	}

	if dto.ItemName != nil {
		dm.ItemName = *dto.ItemName
	}
	if dto.Category != nil {
		dm.Category = *dto.Category
	}
	if dto.UOM != nil {
		dm.UOM = *dto.UOM
	}
	if dto.ItemRate != nil {
		dm.ItemRate = *dto.ItemRate
	}
	dm.UpdatedAt = time.Now()

	if err := s.repo.UpdateItem(dm); err != nil {
		return nil, err
	}
	return ItemFromDataModel(dm), nil
}

func (s *Service) DeleteItem(itemCode string) error {
	if err := s.repo.DeleteItem(itemCode); err != nil {
		return err
	}
	s.logger.Info("item deleted", "item_code", itemCode)
	return nil
}

func (s *Service) GetAllSuppliers() ([]*Supplier, error) {
	rows, err := s.repo.GetAllSuppliers()
	if err != nil {
		s.logger.Error("failed to list suppliers", "error", err)
		return nil, err
	}
	suppliers := make([]*Supplier, 0, len(rows))
	for _, row := range rows {
		suppliers = append(suppliers, SupplierFromDataModel(row))
	}
	return suppliers, nil
}

func (s *Service) CreateSupplier(actorID string, dto CreateSupplierDTO) (*Supplier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm := &catalogDatamodel.Supplier{
		SupplierID:    dto.SupplierID,
		SupplierName:  dto.SupplierName,
		ContactPerson: dto.ContactPerson,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Country:       dto.Country,
		State:         dto.State,
		City:          dto.City,
		Address:       dto.Address,
		Pincode:       dto.Pincode,
		CreatedBy:     actorID,
	}
	if err := s.repo.CreateSupplier(dm); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created", "supplier_id", dm.SupplierID, "created_by", actorID)
	return SupplierFromDataModel(dm), nil
}

func (s *Service) UpdateSupplier(supplierID string, dto UpdateSupplierDTO) (*Supplier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetSupplierByID(supplierID)
	if err != nil {
		return nil, err
	}

	if dto.SupplierName != nil {
		dm.SupplierName = *dto.SupplierName
	}
	if dto.ContactPerson != nil {
		dm.ContactPerson = *dto.ContactPerson
	}
	if dto.Email != nil {
		dm.Email = *dto.Email
	}
	if dto.Phone != nil {
		dm.Phone = *dto.Phone
	}
	if dto.Country != nil {
		dm.Country = *dto.Country
	}
	if dto.State != nil {
		dm.State = *dto.State
	}
	if dto.City != nil {
		dm.City = *dto.City
	}
	if dto.Address != nil {
		dm.Address = *dto.Address
	}
	if dto.Pincode != nil {
		dm.Pincode = *dto.Pincode
	}
	dm.UpdatedAt = time.Now()

	if err := s.repo.UpdateSupplier(dm); err != nil {
		return nil, err
	}
	return SupplierFromDataModel(dm), nil
}

func (s *Service) DeleteSupplier(supplierID string) error {
	if err := s.repo.DeleteSupplier(supplierID); err != nil {
		return err
	}
	s.logger.Info("supplier deleted", "supplier_id", supplierID)
	return nil
}
