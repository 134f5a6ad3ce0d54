package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	"github.com/lawateaditya/Stock-Management/internal/transport"
	"github.com/lawateaditya/Stock-Management/pkg/logger"
)

type ServiceAPI interface {
	GetAllItems() ([]*Item, error)
	GetItem(itemCode string) (*Item, error)
	CreateItem(actorID string, dto CreateItemDTO) (*Item, error)
	UpdateItem(itemCode string, dto UpdateItemDTO) (*Item, error)
	DeleteItem(itemCode string) error

	GetAllSuppliers() ([]*Supplier, error)
	CreateSupplier(actorID string, dto CreateSupplierDTO) (*Supplier, error)
	UpdateSupplier(supplierID string, dto UpdateSupplierDTO) (*Supplier, error)
	DeleteSupplier(supplierID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetAllItems()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}

	var dto CreateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	item, err := h.Service.CreateItem(actor.UserID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "item_code")

	var dto UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	item, err := h.Service.UpdateItem(itemCode, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "item_code")

	if err := h.Service.DeleteItem(itemCode); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

func (h *Handler) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Service.GetAllSuppliers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, SuppliersResponse{Suppliers: suppliers})
}

func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}

	var dto CreateSupplierDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	supplier, err := h.Service.CreateSupplier(actor.UserID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, supplier)
}

func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	supplierID := chi.URLParam(r, "supplier_id")

	var dto UpdateSupplierDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	supplier, err := h.Service.UpdateSupplier(supplierID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, supplier)
}

func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	supplierID := chi.URLParam(r, "supplier_id")

	if err := h.Service.DeleteSupplier(supplierID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Supplier deleted successfully"})
}
