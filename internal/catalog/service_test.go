package catalog_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/catalog"
	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
)

func TestCatalogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Service Suite")
}

// MockRepository implements catalog.RepositoryAPI for testing
type MockRepository struct {
	items      map[string]*catalogDatamodel.Item
	suppliers  map[string]*catalogDatamodel.Supplier
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		items:     make(map[string]*catalogDatamodel.Item),
		suppliers: make(map[string]*catalogDatamodel.Supplier),
	}
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) GetAllItems() ([]*catalogDatamodel.Item, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	items := make([]*catalogDatamodel.Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

func (m *MockRepository) GetItemByCode(itemCode string) (*catalogDatamodel.Item, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	if item, exists := m.items[itemCode]; exists {
		return item, nil
	}
	return nil, internal.ErrItemNotFound
}

func (m *MockRepository) CreateItem(item *catalogDatamodel.Item) error {
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.items[item.ItemCode]; exists {
		return internal.ErrDuplicateItemCode
	}
	m.items[item.ItemCode] = item
	return nil
}

func (m *MockRepository) UpdateItem(item *catalogDatamodel.Item) error {
	if m.shouldFail {
		return m.failError
	}
	m.items[item.ItemCode] = item
	return nil
}

func (m *MockRepository) DeleteItem(itemCode string) error {
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.items[itemCode]; !exists {
		return internal.ErrItemNotFound
	}
	delete(m.items, itemCode)
	return nil
}

func (m *MockRepository) GetAllSuppliers() ([]*catalogDatamodel.Supplier, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	suppliers := make([]*catalogDatamodel.Supplier, 0, len(m.suppliers))
	for _, supplier := range m.suppliers {
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

func (m *MockRepository) GetSupplierByID(supplierID string) (*catalogDatamodel.Supplier, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	if supplier, exists := m.suppliers[supplierID]; exists {
		return supplier, nil
	}
	return nil, internal.ErrSupplierNotFound
}

func (m *MockRepository) CreateSupplier(supplier *catalogDatamodel.Supplier) error {
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.suppliers[supplier.SupplierID]; exists {
		return internal.ErrDuplicateSupplier
	}
	m.suppliers[supplier.SupplierID] = supplier
	return nil
}

func (m *MockRepository) UpdateSupplier(supplier *catalogDatamodel.Supplier) error {
	if m.shouldFail {
		return m.failError
	}
	m.suppliers[supplier.SupplierID] = supplier
	return nil
}

func (m *MockRepository) DeleteSupplier(supplierID string) error {
	if m.shouldFail {
		return m.failError
	}
	if _, exists := m.suppliers[supplierID]; !exists {
		return internal.ErrSupplierNotFound
	}
	delete(m.suppliers, supplierID)
	return nil
}

var _ = Describe("CatalogService", func() {
	var (
		service  *catalog.Service
		mockRepo *MockRepository
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = catalog.NewService(mockRepo, logger)
	})

	Describe("CreateItem", func() {
		Context("when the item is valid", func() {
			It("should persist it with the actor recorded", func() {
				item, err := service.CreateItem("user_000000000001", catalog.CreateItemDTO{
					ItemCode: "ITM-001",
					ItemName: "Steel Rod 12mm",
					Category: "Raw Material",
					UOM:      "kg",
					ItemRate: 52.5,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(item.ItemCode).To(Equal("ITM-001"))
				Expect(item.ItemRate).To(Equal(52.5))
				Expect(item.CreatedBy).To(Equal("user_000000000001"))
				Expect(mockRepo.items).To(HaveKey("ITM-001"))
			})

			It("should accept a zero rate", func() {
				_, err := service.CreateItem("user_000000000001", catalog.CreateItemDTO{
					ItemCode: "ITM-002",
					ItemName: "Scrap",
					ItemRate: 0,
				})
				Expect(err).ToNot(HaveOccurred())
			})
		})

		Context("when the item is invalid", func() {
			It("should reject a missing item code", func() {
				_, err := service.CreateItem("user_000000000001", catalog.CreateItemDTO{
					ItemName: "Nameless",
				})
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("item_code is required"))
			})

			It("should reject a negative rate", func() {
				_, err := service.CreateItem("user_000000000001", catalog.CreateItemDTO{
					ItemCode: "ITM-003",
					ItemName: "Bad Rate",
					ItemRate: -1,
				})
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("item_rate must not be negative"))
			})
		})

		Context("when the item code is taken", func() {
			It("should pass the duplicate error through", func() {
				_, err := service.CreateItem("user_000000000001", catalog.CreateItemDTO{
					ItemCode: "ITM-001", ItemName: "First",
				})
				Expect(err).ToNot(HaveOccurred())

				_, err = service.CreateItem("user_000000000001", catalog.CreateItemDTO{
					ItemCode: "ITM-001", ItemName: "Second",
				})
				Expect(err).To(Equal(internal.ErrDuplicateItemCode))
			})
		})
	})

	Describe("UpdateItem", func() {
		BeforeEach(func() {
			mockRepo.items["ITM-001"] = &catalogDatamodel.Item{
				ItemCode: "ITM-001",
				ItemName: "Steel Rod 12mm",
				Category: "Raw Material",
				UOM:      "kg",
				ItemRate: 52.5,
			}
		})

		It("should change only the provided fields", func() {
			rate := 55.0
			item, err := service.UpdateItem("ITM-001", catalog.UpdateItemDTO{ItemRate: &rate})

			Expect(err).ToNot(HaveOccurred())
			Expect(item.ItemRate).To(Equal(55.0))
			Expect(item.ItemName).To(Equal("Steel Rod 12mm"))
			Expect(item.Category).To(Equal("Raw Material"))
		})

		It("should write a provided empty string", func() {
			empty := ""
			item, err := service.UpdateItem("ITM-001", catalog.UpdateItemDTO{Category: &empty})

			Expect(err).ToNot(HaveOccurred())
			Expect(item.Category).To(Equal(""))
			Expect(item.ItemName).To(Equal("Steel Rod 12mm"))
		})

		It("should reject clearing the item name", func() {
			empty := ""
			_, err := service.UpdateItem("ITM-001", catalog.UpdateItemDTO{ItemName: &empty})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("item_name must not be empty"))
		})

		It("should reject a negative rate", func() {
			rate := -0.5
			_, err := service.UpdateItem("ITM-001", catalog.UpdateItemDTO{ItemRate: &rate})
			Expect(err).To(HaveOccurred())
		})

		It("should return not found for an unknown item", func() {
			name := "Ghost"
			_, err := service.UpdateItem("ITM-404", catalog.UpdateItemDTO{ItemName: &name})
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("DeleteItem", func() {
		It("should remove the item", func() {
			mockRepo.items["ITM-001"] = &catalogDatamodel.Item{ItemCode: "ITM-001", ItemName: "Steel Rod"}
			Expect(service.DeleteItem("ITM-001")).To(Succeed())
			Expect(mockRepo.items).ToNot(HaveKey("ITM-001"))
		})

		It("should return not found for an unknown item", func() {
			Expect(service.DeleteItem("ITM-404")).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("GetAllItems", func() {
		It("should return every item", func() {
			mockRepo.items["ITM-001"] = &catalogDatamodel.Item{ItemCode: "ITM-001", ItemName: "A"}
			mockRepo.items["ITM-002"] = &catalogDatamodel.Item{ItemCode: "ITM-002", ItemName: "B"}

			items, err := service.GetAllItems()
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(2))
		})

		It("should pass repository errors through", func() {
			mockRepo.SetShouldFail(true, errors.New("database down"))
			_, err := service.GetAllItems()
			Expect(err).To(MatchError("database down"))
		})
	})

	Describe("CreateSupplier", func() {
		It("should persist a valid supplier", func() {
			supplier, err := service.CreateSupplier("user_000000000001", catalog.CreateSupplierDTO{
				SupplierID:   "SUP-001",
				SupplierName: "Acme Metals",
				Email:        "sales@acme.example.com",
				City:         "Pune",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(supplier.SupplierID).To(Equal("SUP-001"))
			Expect(supplier.CreatedBy).To(Equal("user_000000000001"))
		})

		It("should reject a missing supplier id", func() {
			_, err := service.CreateSupplier("user_000000000001", catalog.CreateSupplierDTO{
				SupplierName: "No ID",
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("supplier_id is required"))
		})

		It("should reject a malformed email", func() {
			_, err := service.CreateSupplier("user_000000000001", catalog.CreateSupplierDTO{
				SupplierID:   "SUP-002",
				SupplierName: "Bad Email",
				Email:        "not-an-email",
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid email address"))
		})

		It("should pass the duplicate error through", func() {
			_, err := service.CreateSupplier("user_000000000001", catalog.CreateSupplierDTO{
				SupplierID: "SUP-001", SupplierName: "First",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateSupplier("user_000000000001", catalog.CreateSupplierDTO{
				SupplierID: "SUP-001", SupplierName: "Second",
			})
			Expect(err).To(Equal(internal.ErrDuplicateSupplier))
		})
	})

	Describe("UpdateSupplier", func() {
		BeforeEach(func() {
			mockRepo.suppliers["SUP-001"] = &catalogDatamodel.Supplier{
				SupplierID:    "SUP-001",
				SupplierName:  "Acme Metals",
				ContactPerson: "R. Coyote",
				City:          "Pune",
			}
		})

		It("should change only the provided fields", func() {
			city := "Mumbai"
			supplier, err := service.UpdateSupplier("SUP-001", catalog.UpdateSupplierDTO{City: &city})

			Expect(err).ToNot(HaveOccurred())
			Expect(supplier.City).To(Equal("Mumbai"))
			Expect(supplier.SupplierName).To(Equal("Acme Metals"))
			Expect(supplier.ContactPerson).To(Equal("R. Coyote"))
		})

		It("should reject clearing the supplier name", func() {
			empty := ""
			_, err := service.UpdateSupplier("SUP-001", catalog.UpdateSupplierDTO{SupplierName: &empty})
			Expect(err).To(HaveOccurred())
		})

		It("should return not found for an unknown supplier", func() {
			name := "Ghost"
			_, err := service.UpdateSupplier("SUP-404", catalog.UpdateSupplierDTO{SupplierName: &name})
			Expect(err).To(Equal(internal.ErrSupplierNotFound))
		})
	})

	Describe("DeleteSupplier", func() {
		It("should remove the supplier", func() {
			mockRepo.suppliers["SUP-001"] = &catalogDatamodel.Supplier{SupplierID: "SUP-001", SupplierName: "Acme"}
			Expect(service.DeleteSupplier("SUP-001")).To(Succeed())
			Expect(mockRepo.suppliers).ToNot(HaveKey("SUP-001"))
		})

		It("should return not found for an unknown supplier", func() {
			Expect(service.DeleteSupplier("SUP-404")).To(Equal(internal.ErrSupplierNotFound))
		})
	})
})
