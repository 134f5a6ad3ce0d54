// Package stock derives per-item stock statements from the catalog and
// the ledger. Stock is never stored: every figure is recomputed from
// Σ inward − Σ issued at read time, so a deleted ledger entry changes
// the report immediately.
package stock

// Statement is one report row. OpeningStk is fixed at zero: the system
// has no opening-balance bookkeeping, receipts are the only way stock
// enters.
type Statement struct {
	ItemCode        string  `json:"item_code"`
	ItemDescription string  `json:"item_description"`
	Category        string  `json:"category"`
	UOM             string  `json:"uom"`
	OpeningStk      float64 `json:"opening_stk"`
	InwardQty       float64 `json:"inward_qty"`
	IssueQty        float64 `json:"issue_qty"`
	ClosingStk      float64 `json:"closing_stk"`
}

type StatementsResponse struct {
	Stock []*Statement `json:"stock"`
}
