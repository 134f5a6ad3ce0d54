package ledger

import (
	"time"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/core/common/validation"
)

// validDate accepts a plain day or a full RFC 3339 timestamp; the value
// is stored as supplied.
func validDate(value interface{}) *internal.AppError {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return internal.NewValidationFieldError("date", "date must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
}

type CreateInwardDTO struct {
	Date       string  `json:"date"`
	ItemCode   string  `json:"item_code"`
	InwardQty  float64 `json:"inward_qty"`
	InwardRate float64 `json:"inward_rate"`
	Supplier   string  `json:"supplier"`
	RefNo      string  `json:"ref_no"`
}

func (d CreateInwardDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", d.Date).Required().Custom(validDate)
	v.Field("item_code", d.ItemCode).Required()
	v.Field("inward_qty", d.InwardQty).PositiveFloat(internal.ErrCodeInvalidQuantity)
	v.Field("inward_rate", d.InwardRate).NonNegativeFloat(internal.ErrCodeInvalidRate)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CreateIssueDTO struct {
	Date      string  `json:"date"`
	ItemCode  string  `json:"item_code"`
	IssuedQty float64 `json:"issued_qty"`
}

func (d CreateIssueDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", d.Date).Required().Custom(validDate)
	v.Field("item_code", d.ItemCode).Required()
	v.Field("issued_qty", d.IssuedQty).PositiveFloat(internal.ErrCodeInvalidQuantity)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type InwardEntriesResponse struct {
	Entries []*InwardEntry `json:"entries"`
}

type IssueEntriesResponse struct {
	Entries []*IssueEntry `json:"entries"`
}

// DeleteInwardResponse reports the cascade: deleting an inward entry
// removes every issue entry for the same item so the stock equation
// cannot go negative.
type DeleteInwardResponse struct {
	Message             string `json:"message"`
	DeletedIssueEntries int64  `json:"deleted_issue_entries"`
}
