package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lawateaditya/Stock-Management/internal/core/events"
	"github.com/lawateaditya/Stock-Management/internal/core/metrics"
)

// EventHandler consumes ledger events for the audit log and the
// prometheus counters. It runs off the in-process bus so recording an
// entry never waits on observability.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandleInwardRecorded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.InwardRecordedEvent)
	if !ok {
		return fmt.Errorf("expected InwardRecordedEvent, got %T", event)
	}

	metrics.InwardRecordedTotal.Inc()
	h.logger.Info("audit: inward recorded",
		"entry_id", e.EntryID,
		"item_code", e.ItemCode,
		"inward_qty", e.InwardQty,
		"inward_value", e.InwardValue,
		"created_by", e.CreatedBy,
		"event_id", e.EventID())
	return nil
}

func (h *EventHandler) HandleInwardDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.InwardDeletedEvent)
	if !ok {
		return fmt.Errorf("expected InwardDeletedEvent, got %T", event)
	}

	metrics.EntriesDeletedTotal.WithLabelValues("inward").Inc()
	if e.CascadedIssues > 0 {
		metrics.CascadedIssueDeletesTotal.Add(float64(e.CascadedIssues))
	}
	h.logger.Info("audit: inward deleted",
		"entry_id", e.EntryID,
		"item_code", e.ItemCode,
		"cascaded_issues", e.CascadedIssues,
		"deleted_by", e.DeletedBy,
		"event_id", e.EventID())
	return nil
}

func (h *EventHandler) HandleIssueRecorded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.IssueRecordedEvent)
	if !ok {
		return fmt.Errorf("expected IssueRecordedEvent, got %T", event)
	}

	metrics.IssueRecordedTotal.Inc()
	h.logger.Info("audit: issue recorded",
		"entry_id", e.EntryID,
		"item_code", e.ItemCode,
		"issued_qty", e.IssuedQty,
		"created_by", e.CreatedBy,
		"event_id", e.EventID())
	return nil
}

func (h *EventHandler) HandleIssueDeleted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.IssueDeletedEvent)
	if !ok {
		return fmt.Errorf("expected IssueDeletedEvent, got %T", event)
	}

	metrics.EntriesDeletedTotal.WithLabelValues("issue").Inc()
	h.logger.Info("audit: issue deleted",
		"entry_id", e.EntryID,
		"item_code", e.ItemCode,
		"deleted_by", e.DeletedBy,
		"event_id", e.EventID())
	return nil
}

func (h *EventHandler) HandleIssueRejected(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.IssueRejectedEvent)
	if !ok {
		return fmt.Errorf("expected IssueRejectedEvent, got %T", event)
	}

	metrics.IssueRejectedTotal.Inc()
	h.logger.Warn("audit: issue rejected, insufficient stock",
		"item_code", e.ItemCode,
		"requested_qty", e.RequestedQty,
		"available_qty", e.AvailableQty,
		"requested_by", e.RequestedBy,
		"event_id", e.EventID())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeInwardRecorded, h.HandleInwardRecorded)
	eventBus.Subscribe(events.EventTypeInwardDeleted, h.HandleInwardDeleted)
	eventBus.Subscribe(events.EventTypeIssueRecorded, h.HandleIssueRecorded)
	eventBus.Subscribe(events.EventTypeIssueDeleted, h.HandleIssueDeleted)
	eventBus.Subscribe(events.EventTypeIssueRejected, h.HandleIssueRejected)

	h.logger.Info("ledger event handlers registered",
		"handlers", []string{
			events.EventTypeInwardRecorded,
			events.EventTypeInwardDeleted,
			events.EventTypeIssueRecorded,
			events.EventTypeIssueDeleted,
			events.EventTypeIssueRejected,
		})
}
