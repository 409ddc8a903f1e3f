package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type StylistGormRepository struct {
	db *gorm.DB
}

func NewStylistGormRepository(db *gorm.DB) *StylistGormRepository {
	return &StylistGormRepository{db: db}
}

func (r *StylistGormRepository) GetStylist(
	ctx context.Context,
	salonID uint,
	stylistID uint,
) (*models.Stylist, error) {

	var st models.Stylist
	err := BreaksInOrder(r.db.WithContext(ctx)).
		Where("salon_id = ? AND id = ?", salonID, stylistID).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// AddBreak appends br at the end of the stylist's break list.
func (r *StylistGormRepository) AddBreak(
	ctx context.Context,
	salonID uint,
	stylistID uint,
	br *models.StylistBreak,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st models.Stylist
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("salon_id = ? AND id = ?", salonID, stylistID).
			First(&st).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("stylist_not_found")
			}
			return err
		}

		var next int
		if err := tx.Model(&models.StylistBreak{}).
			Where("stylist_id = ?", stylistID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		br.StylistID = stylistID
		br.Position = next
		return tx.Create(br).Error
	})
}

// RemoveBreakAt deletes the break at index in insertion order.
func (r *StylistGormRepository) RemoveBreakAt(
	ctx context.Context,
	salonID uint,
	stylistID uint,
	index int,
) (*models.StylistBreak, error) {

	if index < 0 {
		return nil, httperr.ErrBusiness("break_not_found")
	}

	var removed models.StylistBreak
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Stylist{}).
			Where("salon_id = ? AND id = ?", salonID, stylistID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return httperr.ErrBusiness("stylist_not_found")
		}

		if err := tx.
			Where("stylist_id = ?", stylistID).
			Order("position ASC").
			Offset(index).
			Limit(1).
			Find(&removed).Error; err != nil {
			return err
		}
		if removed.ID == 0 {
			return httperr.ErrBusiness("break_not_found")
		}

		return tx.Delete(&models.StylistBreak{}, removed.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func (r *StylistGormRepository) SetAvatar(
	ctx context.Context,
	salonID uint,
	stylistID uint,
	key string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Stylist{}).
		Where("salon_id = ? AND id = ?", salonID, stylistID).
		Update("avatar_key", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("stylist_not_found")
	}
	return nil
}

func (r *StylistGormRepository) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	return getSalon(ctx, r.db, id)
}
