package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

// Scope adjusts the base query of a Crud, e.g. to preload children.
type Scope func(*gorm.DB) *gorm.DB

// Crud is the salon-scoped list/get/create/update/delete store shared by the
// simple catalog entities. T must carry ID and SalonID columns.
type Crud[T any] struct {
	db     *gorm.DB
	entity string
	scopes []Scope
}

func NewCrud[T any](db *gorm.DB, entity string, scopes ...Scope) *Crud[T] {
	return &Crud[T]{db: db, entity: entity, scopes: scopes}
}

func (r *Crud[T]) query(ctx context.Context, salonID uint) *gorm.DB {
	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)
	for _, s := range r.scopes {
		q = s(q)
	}
	return q
}

func (r *Crud[T]) notFound() error {
	return httperr.ErrBusiness(r.entity + "_not_found")
}

func (r *Crud[T]) List(ctx context.Context, salonID uint) ([]T, error) {
	var items []T
	if err := r.query(ctx, salonID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Search lists rows where any of columns contains term, case-insensitively.
func (r *Crud[T]) Search(ctx context.Context, salonID uint, term string, columns ...string) ([]T, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(columns) == 0 {
		return r.List(ctx, salonID)
	}

	like := "%" + term + "%"
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, like)
	}

	var items []T
	err := r.query(ctx, salonID).
		Where(strings.Join(conds, " OR "), args...).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Crud[T]) Get(ctx context.Context, salonID, id uint) (*T, error) {
	var item T
	err := r.query(ctx, salonID).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound()
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Crud[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update loads the row, applies mutate and saves it in one transaction.
// Nothing is written when mutate fails.
func (r *Crud[T]) Update(
	ctx context.Context,
	salonID, id uint,
	mutate func(*T) error,
) (*T, error) {

	var item T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ? AND id = ?", salonID, id).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return r.notFound()
			}
			return err
		}
		if err := mutate(&item); err != nil {
			return err
		}
		return tx.Omit("created_at").Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, salonID, id)
}

func (r *Crud[T]) Delete(ctx context.Context, salonID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("salon_id = ? AND id = ?", salonID, id).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}
