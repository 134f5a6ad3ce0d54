package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawateaditya/Stock-Management/internal"
	catalogDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/catalog"
	ledgerDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/ledger"
	"github.com/lawateaditya/Stock-Management/internal/ledger"
)

// LedgerRepository implements ledger.RepositoryAPI using GORM.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) ledger.RepositoryAPI {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) GetItemName(itemCode string) (string, error) {
	var item catalogDatamodel.Item
	err := r.db.Where("item_code = ?", itemCode).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", internal.ErrItemNotFound
		}
		return "", err
	}
	return item.ItemName, nil
}

func (r *LedgerRepository) CreateInward(entry *ledgerDatamodel.InwardEntry) error {
	return r.db.Create(entry).Error
}

func (r *LedgerRepository) GetInwardByID(entryID string) (*ledgerDatamodel.InwardEntry, error) {
	var entry ledgerDatamodel.InwardEntry
	err := r.db.Where("entry_id = ?", entryID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *LedgerRepository) ListInward() ([]*ledgerDatamodel.InwardEntry, error) {
	var entries []*ledgerDatamodel.InwardEntry
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *LedgerRepository) ListInwardByCreator(userID string) ([]*ledgerDatamodel.InwardEntry, error) {
	var entries []*ledgerDatamodel.InwardEntry
	err := r.db.Where("created_by = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// DeleteInwardCascade removes the inward entry and every issue entry for
// the same item_code in one transaction. The count of removed issues is
// reported back to the caller.
func (r *LedgerRepository) DeleteInwardCascade(entryID, itemCode string) (int64, error) {
	var cascaded int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("item_code = ?", itemCode).Delete(&ledgerDatamodel.IssueEntry{})
		if res.Error != nil {
			return res.Error
		}
		cascaded = res.RowsAffected

		del := tx.Where("entry_id = ?", entryID).Delete(&ledgerDatamodel.InwardEntry{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return internal.ErrEntryNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cascaded, nil
}

// CreateIssueChecked holds the availability check and the insert in one
// transaction. Under PostgreSQL the item row is locked FOR UPDATE so
// concurrent issues for the same item serialize; SQLite serializes
// writers on its own. The sums are recomputed inside the transaction, so
// two racing requests can never jointly oversell.
func (r *LedgerRepository) CreateIssueChecked(entry *ledgerDatamodel.IssueEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		itemQuery := tx.Where("item_code = ?", entry.ItemCode)
		if tx.Dialector.Name() == "postgres" {
			itemQuery = itemQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var item catalogDatamodel.Item
		if err := itemQuery.First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrItemNotFound
			}
			return err
		}

		totalInward, err := sumQty(tx, &ledgerDatamodel.InwardEntry{}, "inward_qty", entry.ItemCode)
		if err != nil {
			return err
		}
		totalIssued, err := sumQty(tx, &ledgerDatamodel.IssueEntry{}, "issued_qty", entry.ItemCode)
		if err != nil {
			return err
		}

		available := totalInward - totalIssued
		if entry.IssuedQty > available {
			return ledger.NewInsufficientStockError(available)
		}

		return tx.Create(entry).Error
	})
}

func (r *LedgerRepository) GetIssueByID(entryID string) (*ledgerDatamodel.IssueEntry, error) {
	var entry ledgerDatamodel.IssueEntry
	err := r.db.Where("entry_id = ?", entryID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *LedgerRepository) ListIssue() ([]*ledgerDatamodel.IssueEntry, error) {
	var entries []*ledgerDatamodel.IssueEntry
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *LedgerRepository) ListIssueByCreator(userID string) ([]*ledgerDatamodel.IssueEntry, error) {
	var entries []*ledgerDatamodel.IssueEntry
	err := r.db.Where("created_by = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *LedgerRepository) DeleteIssue(entryID string) error {
	res := r.db.Where("entry_id = ?", entryID).Delete(&ledgerDatamodel.IssueEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEntryNotFound
	}
	return nil
}

func (r *LedgerRepository) SumInwardQty(itemCode string) (float64, error) {
	return sumQty(r.db, &ledgerDatamodel.InwardEntry{}, "inward_qty", itemCode)
}

func (r *LedgerRepository) SumIssuedQty(itemCode string) (float64, error) {
	return sumQty(r.db, &ledgerDatamodel.IssueEntry{}, "issued_qty", itemCode)
}

func sumQty(db *gorm.DB, model interface{}, column, itemCode string) (float64, error) {
	var total float64
	err := db.Model(model).
		Where("item_code = ?", itemCode).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}
