package ledger

import (
	"context"
	"log/slog"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	ledgerDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/ledger"
	"github.com/lawateaditya/Stock-Management/internal/core/events"
)

type RepositoryAPI interface {
	// GetItemName resolves the current catalog name for the description
	// snapshot. Unknown codes return ErrItemNotFound.
	GetItemName(itemCode string) (string, error)

	CreateInward(entry *ledgerDatamodel.InwardEntry) error
	GetInwardByID(entryID string) (*ledgerDatamodel.InwardEntry, error)
	ListInward() ([]*ledgerDatamodel.InwardEntry, error)
	ListInwardByCreator(userID string) ([]*ledgerDatamodel.InwardEntry, error)
	// DeleteInwardCascade removes the entry and every issue entry for its
	// item_code in one transaction, returning the cascaded issue count.
	DeleteInwardCascade(entryID, itemCode string) (int64, error)

	// CreateIssueChecked inserts the entry only if enough stock is
	// available, holding that check and the insert in one transaction.
	// Shortfall returns *InsufficientStockError.
	CreateIssueChecked(entry *ledgerDatamodel.IssueEntry) error
	GetIssueByID(entryID string) (*ledgerDatamodel.IssueEntry, error)
	ListIssue() ([]*ledgerDatamodel.IssueEntry, error)
	ListIssueByCreator(userID string) ([]*ledgerDatamodel.IssueEntry, error)
	DeleteIssue(entryID string) error

	SumInwardQty(itemCode string) (float64, error)
	SumIssuedQty(itemCode string) (float64, error)
}

type Service struct {
	repo   RepositoryAPI
	policy auth.Policy
	events *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		policy: auth.NewPolicy(),
		events: bus,
		logger: logger,
	}
}

// RecordInward appends a receipt to the ledger. The stored entry
// snapshots the item name and the computed value so later catalog edits
// do not rewrite history.
func (s *Service) RecordInward(actor *auth.User, dto CreateInwardDTO) (*InwardEntry, error) {
	if !s.policy.CanAccessInward(actor.Role) {
		return nil, internal.ErrRoleDenied
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	itemName, err := s.repo.GetItemName(dto.ItemCode)
	if err != nil {
		return nil, err
	}

	dm := &ledgerDatamodel.InwardEntry{
		EntryID:         internal.NewID("inward"),
		Date:            dto.Date,
		ItemCode:        dto.ItemCode,
		ItemDescription: itemName,
		InwardQty:       dto.InwardQty,
		InwardRate:      dto.InwardRate,
		InwardValue:     dto.InwardQty * dto.InwardRate,
		Supplier:        dto.Supplier,
		RefNo:           dto.RefNo,
		CreatedBy:       actor.UserID,
	}
	if err := s.repo.CreateInward(dm); err != nil {
		s.logger.Error("failed to record inward entry", "item_code", dto.ItemCode, "error", err)
		return nil, err
	}

	s.publish(events.NewInwardRecordedEvent(dm.EntryID, dm.ItemCode, dm.InwardQty, dm.InwardValue, actor.UserID))
	return InwardFromDataModel(dm), nil
}

// ListInward returns every entry for admins and only the caller's own
// entries otherwise.
func (s *Service) ListInward(actor *auth.User) ([]*InwardEntry, error) {
	if !s.policy.CanAccessInward(actor.Role) {
		return nil, internal.ErrRoleDenied
	}

	var (
		rows []*ledgerDatamodel.InwardEntry
		err  error
	)
	if s.policy.SeesAllEntries(actor.Role) {
		rows, err = s.repo.ListInward()
	} else {
		rows, err = s.repo.ListInwardByCreator(actor.UserID)
	}
	if err != nil {
		s.logger.Error("failed to list inward entries", "error", err)
		return nil, err
	}

	entries := make([]*InwardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, InwardFromDataModel(row))
	}
	return entries, nil
}

// DeleteInward removes a receipt and cascades to every issue entry of
// the same item so the stock equation cannot go negative. Returns the
// number of cascaded issue entries.
func (s *Service) DeleteInward(actor *auth.User, entryID string) (int64, error) {
	dm, err := s.repo.GetInwardByID(entryID)
	if err != nil {
		return 0, err
	}
	if err := s.policy.CanDeleteEntry(actor, dm.CreatedBy); err != nil {
		return 0, err
	}

	cascaded, err := s.repo.DeleteInwardCascade(entryID, dm.ItemCode)
	if err != nil {
		s.logger.Error("failed to delete inward entry", "entry_id", entryID, "error", err)
		return 0, err
	}

	s.logger.Info("inward entry deleted", "entry_id", entryID, "item_code", dm.ItemCode, "cascaded_issues", cascaded)
	s.publish(events.NewInwardDeletedEvent(entryID, dm.ItemCode, cascaded, actor.UserID))
	return cascaded, nil
}

// RecordIssue appends a stock withdrawal. The availability check and the
// insert run in one repository transaction; overselling is rejected with
// InsufficientStockError carrying the available quantity.
func (s *Service) RecordIssue(actor *auth.User, dto CreateIssueDTO) (*IssueEntry, error) {
	if !s.policy.CanAccessIssue(actor.Role) {
		return nil, internal.ErrRoleDenied
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	itemName, err := s.repo.GetItemName(dto.ItemCode)
	if err != nil {
		return nil, err
	}

	dm := &ledgerDatamodel.IssueEntry{
		EntryID:         internal.NewID("issue"),
		Date:            dto.Date,
		ItemCode:        dto.ItemCode,
		ItemDescription: itemName,
		IssuedQty:       dto.IssuedQty,
		CreatedBy:       actor.UserID,
	}
	if err := s.repo.CreateIssueChecked(dm); err != nil {
		if insufficient, ok := err.(*InsufficientStockError); ok {
			s.publish(events.NewIssueRejectedEvent(dto.ItemCode, dto.IssuedQty, insufficient.Available, actor.UserID))
			return nil, err
		}
		s.logger.Error("failed to record issue entry", "item_code", dto.ItemCode, "error", err)
		return nil, err
	}

	s.publish(events.NewIssueRecordedEvent(dm.EntryID, dm.ItemCode, dm.IssuedQty, actor.UserID))
	return IssueFromDataModel(dm), nil
}

func (s *Service) ListIssue(actor *auth.User) ([]*IssueEntry, error) {
	if !s.policy.CanAccessIssue(actor.Role) {
		return nil, internal.ErrRoleDenied
	}

	var (
		rows []*ledgerDatamodel.IssueEntry
		err  error
	)
	if s.policy.SeesAllEntries(actor.Role) {
		rows, err = s.repo.ListIssue()
	} else {
		rows, err = s.repo.ListIssueByCreator(actor.UserID)
	}
	if err != nil {
		s.logger.Error("failed to list issue entries", "error", err)
		return nil, err
	}

	entries := make([]*IssueEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, IssueFromDataModel(row))
	}
	return entries, nil
}

// DeleteIssue removes a single issue entry. No cascade: returning stock
// to availability is always safe.
func (s *Service) DeleteIssue(actor *auth.User, entryID string) error {
	dm, err := s.repo.GetIssueByID(entryID)
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteEntry(actor, dm.CreatedBy); err != nil {
		return err
	}

	if err := s.repo.DeleteIssue(entryID); err != nil {
		s.logger.Error("failed to delete issue entry", "entry_id", entryID, "error", err)
		return err
	}

	s.publish(events.NewIssueDeletedEvent(entryID, dm.ItemCode, actor.UserID))
	return nil
}

// TotalInwardQty is an aggregation primitive for stock reporting.
func (s *Service) TotalInwardQty(itemCode string) (float64, error) {
	return s.repo.SumInwardQty(itemCode)
}

// TotalIssuedQty is an aggregation primitive for stock reporting.
func (s *Service) TotalIssuedQty(itemCode string) (float64, error) {
	return s.repo.SumIssuedQty(itemCode)
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	s.events.Publish(context.Background(), event)
}
