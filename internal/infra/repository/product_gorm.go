package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// UpsertProducts inserts products keyed by (salon, name, HSN) and refreshes
// the unit of the ones that already exist. Stock is overwritten only when
// withStock is set.
func (r *ProductGormRepository) UpsertProducts(
	ctx context.Context,
	salonID uint,
	products []models.Product,
	withStock bool,
) (int, error) {

	if len(products) == 0 {
		return 0, nil
	}
	for i := range products {
		products[i].SalonID = salonID
	}

	columns := []string{"unit", "updated_at"}
	if withStock {
		columns = append(columns, "stock")
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "salon_id"}, {Name: "name"}, {Name: "hsn_code"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&products)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *ProductGormRepository) FindByIdentity(
	ctx context.Context,
	salonID uint,
	name string,
	hsn string,
) (*models.Product, error) {

	var p models.Product
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND name = ? AND hsn_code = ?", salonID, name, hsn).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
