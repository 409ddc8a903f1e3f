package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

func AvatarKey(salonID, stylistID uint) string {
	return fmt.Sprintf("salons/%d/stylists/%d/avatar-%s.webp", salonID, stylistID, uuid.NewString())
}

// StockSheetKey keeps the original extension of the uploaded workbook.
func StockSheetKey(salonID uint, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("salons/%d/stock/%s%s", salonID, uuid.NewString(), ext)
}
