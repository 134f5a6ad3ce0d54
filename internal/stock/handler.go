package stock

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lawateaditya/Stock-Management/internal/transport"
	"github.com/lawateaditya/Stock-Management/pkg/logger"
)

type ServiceAPI interface {
	GetStockStatement() ([]*Statement, error)
	BuildWorkbook() (*excelize.File, error)
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

func (h *Handler) GetStockStatement(w http.ResponseWriter, r *http.Request) {
	statements, err := h.Service.GetStockStatement()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, StatementsResponse{Stock: statements})
}

// ExportStockStatement streams the statement as an xlsx attachment.
func (h *Handler) ExportStockStatement(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.BuildWorkbook()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("stock_statement_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := f.Write(w); err != nil {
		h.Logger.Error("failed to stream stock export", "error", err)
	}
}
