package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeInwardRecorded = "ledger.inward.recorded"
	EventTypeInwardDeleted  = "ledger.inward.deleted"
	EventTypeIssueRecorded  = "ledger.issue.recorded"
	EventTypeIssueDeleted   = "ledger.issue.deleted"
	EventTypeIssueRejected  = "ledger.issue.rejected"
)

type InwardRecordedEvent struct {
	BaseEvent
	EntryID     string  `json:"entry_id"`
	ItemCode    string  `json:"item_code"`
	InwardQty   float64 `json:"inward_qty"`
	InwardValue float64 `json:"inward_value"`
	CreatedBy   string  `json:"created_by"`
}

func NewInwardRecordedEvent(entryID, itemCode string, qty, value float64, createdBy string) *InwardRecordedEvent {
	return &InwardRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInwardRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entry_id":     entryID,
				"item_code":    itemCode,
				"inward_qty":   qty,
				"inward_value": value,
				"created_by":   createdBy,
			},
		},
		EntryID:     entryID,
		ItemCode:    itemCode,
		InwardQty:   qty,
		InwardValue: value,
		CreatedBy:   createdBy,
	}
}

// InwardDeletedEvent reports the cascade: CascadedIssues is the number of
// issue entries removed together with the inward entry.
type InwardDeletedEvent struct {
	BaseEvent
	EntryID        string `json:"entry_id"`
	ItemCode       string `json:"item_code"`
	CascadedIssues int64  `json:"cascaded_issues"`
	DeletedBy      string `json:"deleted_by"`
}

func NewInwardDeletedEvent(entryID, itemCode string, cascadedIssues int64, deletedBy string) *InwardDeletedEvent {
	return &InwardDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInwardDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entry_id":        entryID,
				"item_code":       itemCode,
				"cascaded_issues": cascadedIssues,
				"deleted_by":      deletedBy,
			},
		},
		EntryID:        entryID,
		ItemCode:       itemCode,
		CascadedIssues: cascadedIssues,
		DeletedBy:      deletedBy,
	}
}

type IssueRecordedEvent struct {
	BaseEvent
	EntryID   string  `json:"entry_id"`
	ItemCode  string  `json:"item_code"`
	IssuedQty float64 `json:"issued_qty"`
	CreatedBy string  `json:"created_by"`
}

func NewIssueRecordedEvent(entryID, itemCode string, qty float64, createdBy string) *IssueRecordedEvent {
	return &IssueRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entry_id":   entryID,
				"item_code":  itemCode,
				"issued_qty": qty,
				"created_by": createdBy,
			},
		},
		EntryID:   entryID,
		ItemCode:  itemCode,
		IssuedQty: qty,
		CreatedBy: createdBy,
	}
}

type IssueDeletedEvent struct {
	BaseEvent
	EntryID   string `json:"entry_id"`
	ItemCode  string `json:"item_code"`
	DeletedBy string `json:"deleted_by"`
}

func NewIssueDeletedEvent(entryID, itemCode, deletedBy string) *IssueDeletedEvent {
	return &IssueDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entry_id":   entryID,
				"item_code":  itemCode,
				"deleted_by": deletedBy,
			},
		},
		EntryID:   entryID,
		ItemCode:  itemCode,
		DeletedBy: deletedBy,
	}
}

type IssueRejectedEvent struct {
	BaseEvent
	ItemCode     string  `json:"item_code"`
	RequestedQty float64 `json:"requested_qty"`
	AvailableQty float64 `json:"available_qty"`
	RequestedBy  string  `json:"requested_by"`
}

func NewIssueRejectedEvent(itemCode string, requestedQty, availableQty float64, requestedBy string) *IssueRejectedEvent {
	return &IssueRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"item_code":     itemCode,
				"requested_qty": requestedQty,
				"available_qty": availableQty,
				"requested_by":  requestedBy,
			},
		},
		ItemCode:     itemCode,
		RequestedQty: requestedQty,
		AvailableQty: availableQty,
		RequestedBy:  requestedBy,
	}
}
