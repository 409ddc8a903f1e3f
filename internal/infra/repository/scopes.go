package repository

import "gorm.io/gorm"

// BreaksInOrder preloads stylist breaks by insertion position.
func BreaksInOrder(db *gorm.DB) *gorm.DB {
	return db.Preload("Breaks", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}
