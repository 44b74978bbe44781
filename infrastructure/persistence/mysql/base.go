package mysql

import (
	"context"
	"errors"
	"strings"

	"petcare/domain/shared"
	"petcare/infrastructure/persistence"

	"gorm.io/gorm"
)

// baseRepository resolves the handle every repository query runs on.
type baseRepository struct {
	db *gorm.DB
}

// getDB returns the transaction from context if available, otherwise the default db
func (r baseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// inTx runs fn on the context transaction, or opens one for it.
func (r baseRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062") ||
		strings.Contains(errStr, "UNIQUE constraint failed")
}

// first loads one row, mapping a missing row to a not-found domain error.
func first[T any](query *gorm.DB, entity string) (*T, error) {
	var row T
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(entity)
		}
		return nil, err
	}
	return &row, nil
}

// paginate counts the filtered rows then loads one page in the given order.
func paginate[T any](query *gorm.DB, page shared.PageQuery, order string) ([]T, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if total == 0 {
		return rows, 0, nil
	}
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Offset(page.Offset()).Limit(page.Limit()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// upsert inserts the row, or overwrites every column except created_at and
// omit when the primary key already exists.
func upsert[T any](tx *gorm.DB, row *T, id string, omit ...string) error {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return tx.Create(row).Error
	}
	return tx.Model(row).Select("*").Omit(append([]string{"id", "created_at"}, omit...)...).Updates(row).Error
}

// deleteByID removes one row, failing with not-found when nothing matched.
func deleteByID[T any](db *gorm.DB, id, entity string) error {
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(entity)
	}
	return nil
}

// incrementColumn moves a counter by delta without letting it go below zero.
func incrementColumn[T any](db *gorm.DB, id, column string, delta int64) error {
	return db.Model(new(T)).
		Where("id = ?", id).
		Where(column+" + ? >= 0", delta).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// decrementGuarded takes quantity off column, plus adds it to alsoAdd when
// set. It reports false when the row is missing or holds less than quantity.
func decrementGuarded[T any](db *gorm.DB, id, column string, quantity int64, alsoAdd string) (bool, error) {
	updates := map[string]any{column: gorm.Expr(column+" - ?", quantity)}
	if alsoAdd != "" {
		updates[alsoAdd] = gorm.Expr(alsoAdd+" + ?", quantity)
	}
	result := db.Model(new(T)).
		Where("id = ? AND "+column+" >= ?", id, quantity).
		UpdateColumns(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func likePattern(keyword string) string {
	return "%" + strings.TrimSpace(keyword) + "%"
}
