package stock

import (
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/lawateaditya/Stock-Management/internal/catalog"
)

// ItemSource lists the catalog items the report iterates over.
type ItemSource interface {
	GetAllItems() ([]*catalog.Item, error)
}

// LedgerTotals exposes the ledger aggregation primitives.
type LedgerTotals interface {
	TotalInwardQty(itemCode string) (float64, error)
	TotalIssuedQty(itemCode string) (float64, error)
}

type Service struct {
	items  ItemSource
	ledger LedgerTotals
	logger *slog.Logger
}

func NewService(items ItemSource, ledger LedgerTotals, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		items:  items,
		ledger: ledger,
		logger: logger,
	}
}

// GetStockStatement builds one row per catalog item. Items with no
// ledger movement report zeros; entries for deleted items disappear from
// the report because the iteration is catalog-driven.
func (s *Service) GetStockStatement() ([]*Statement, error) {
	items, err := s.items.GetAllItems()
	if err != nil {
		s.logger.Error("failed to load items for stock statement", "error", err)
		return nil, err
	}

	statements := make([]*Statement, 0, len(items))
	for _, item := range items {
		inward, err := s.ledger.TotalInwardQty(item.ItemCode)
		if err != nil {
			return nil, err
		}
		issued, err := s.ledger.TotalIssuedQty(item.ItemCode)
		if err != nil {
			return nil, err
		}

		statements = append(statements, &Statement{
			ItemCode:        item.ItemCode,
			ItemDescription: item.ItemName,
			Category:        item.Category,
			UOM:             item.UOM,
			OpeningStk:      0,
			InwardQty:       inward,
			IssueQty:        issued,
			ClosingStk:      inward - issued,
		})
	}
	return statements, nil
}

var exportHeader = []interface{}{
	"Item Code", "Item Description", "Category", "UOM",
	"Opening Stk", "Inward Qty", "Issue Qty", "Closing Stk",
}

// BuildWorkbook renders the statement as an xlsx workbook with a single
// "Stock Statement" sheet. The caller owns closing the file.
func (s *Service) BuildWorkbook() (*excelize.File, error) {
	statements, err := s.GetStockStatement()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Stock Statement"
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}

	for i, st := range statements {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{
			st.ItemCode, st.ItemDescription, st.Category, st.UOM,
			st.OpeningStk, st.InwardQty, st.IssueQty, st.ClosingStk,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}
