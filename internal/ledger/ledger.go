package ledger

import (
	"fmt"
	"strconv"
	"time"

	ledgerDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/ledger"
)

// InwardEntry records stock received into the store. Entries are
// append-only: corrections happen by deleting and re-recording, never by
// editing quantities in place.
type InwardEntry struct {
	EntryID         string    `json:"entry_id"`
	Date            string    `json:"date"`
	ItemCode        string    `json:"item_code"`
	ItemDescription string    `json:"item_description"`
	InwardQty       float64   `json:"inward_qty"`
	InwardRate      float64   `json:"inward_rate"`
	InwardValue     float64   `json:"inward_value"`
	Supplier        string    `json:"supplier"`
	RefNo           string    `json:"ref_no"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// IssueEntry records stock handed out of the store.
type IssueEntry struct {
	EntryID         string    `json:"entry_id"`
	Date            string    `json:"date"`
	ItemCode        string    `json:"item_code"`
	ItemDescription string    `json:"item_description"`
	IssuedQty       float64   `json:"issued_qty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// InsufficientStockError rejects an issue that would drive available
// stock below zero. Available carries the quantity computed inside the
// same transaction that attempted the insert.
type InsufficientStockError struct {
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Available: %s", FormatQty(e.Available))
}

func NewInsufficientStockError(available float64) *InsufficientStockError {
	return &InsufficientStockError{Available: available}
}

// FormatQty renders a quantity without a trailing ".0" for whole numbers.
func FormatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func InwardFromDataModel(dm *ledgerDatamodel.InwardEntry) *InwardEntry {
	return &InwardEntry{
		EntryID:         dm.EntryID,
		Date:            dm.Date,
		ItemCode:        dm.ItemCode,
		ItemDescription: dm.ItemDescription,
		InwardQty:       dm.InwardQty,
		InwardRate:      dm.InwardRate,
		InwardValue:     dm.InwardValue,
		Supplier:        dm.Supplier,
		RefNo:           dm.RefNo,
		CreatedBy:       dm.CreatedBy,
		CreatedAt:       dm.CreatedAt,
	}
}

func IssueFromDataModel(dm *ledgerDatamodel.IssueEntry) *IssueEntry {
	return &IssueEntry{
		EntryID:         dm.EntryID,
		Date:            dm.Date,
		ItemCode:        dm.ItemCode,
		ItemDescription: dm.ItemDescription,
		IssuedQty:       dm.IssuedQty,
		CreatedBy:       dm.CreatedBy,
		CreatedAt:       dm.CreatedAt,
	}
}
