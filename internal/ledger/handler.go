package ledger

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
	RecordInward(actor *auth.User, dto CreateInwardDTO) (*InwardEntry, error)
	ListInward(actor *auth.User) ([]*InwardEntry, error)
	DeleteInward(actor *auth.User, entryID string) (int64, error)

	RecordIssue(actor *auth.User, dto CreateIssueDTO) (*IssueEntry, error)
	ListIssue(actor *auth.User) ([]*IssueEntry, error)
	DeleteIssue(actor *auth.User, entryID string) error
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

func (h *Handler) CreateInward(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}

	var dto CreateInwardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	entry, err := h.Service.RecordInward(actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) ListInward(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}

	entries, err := h.Service.ListInward(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, InwardEntriesResponse{Entries: entries})
}

func (h *Handler) DeleteInward(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}
	entryID := chi.URLParam(r, "entry_id")

	cascaded, err := h.Service.DeleteInward(actor, entryID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, DeleteInwardResponse{
		Message:             "Inward entry and related issue entries deleted successfully",
		DeletedIssueEntries: cascaded,
	})
}

func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}

	var dto CreateIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	entry, err := h.Service.RecordIssue(actor, dto)
	if err != nil {
		if insufficient, ok := err.(*InsufficientStockError); ok {
			h.HandleServiceError(w, internal.NewValidationError(insufficient.Error(), internal.ErrCodeInsufficientStock))
			return
		}
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) ListIssue(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}

	entries, err := h.Service.ListIssue(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, IssueEntriesResponse{Entries: entries})
}

func (h *Handler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, internal.ErrMissingCredentials)
		return
	}
	entryID := chi.URLParam(r, "entry_id")

	if err := h.Service.DeleteIssue(actor, entryID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Issue entry deleted successfully"})
}
