package stylist

import (
	"context"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/imaging"
	"github.com/BruksfildServices01/salon-pos/internal/storage"
)

type UploadAvatar struct {
	repo  Repository
	store storage.Store
	audit *audit.Dispatcher
}

func NewUploadAvatar(repo Repository, store storage.Store, audit *audit.Dispatcher) *UploadAvatar {
	return &UploadAvatar{repo: repo, store: store, audit: audit}
}

// Execute re-encodes raw as a square-bounded webp and stores it under the
// stylist's avatar key.
func (uc *UploadAvatar) Execute(ctx context.Context, salonID, userID, stylistID uint, raw []byte) (string, error) {
	if _, err := uc.repo.GetStylist(ctx, salonID, stylistID); err != nil {
		return "", err
	}

	encoded, err := imaging.Avatar(raw)
	if err != nil {
		return "", err
	}

	key := storage.AvatarKey(salonID, stylistID)
	if err := uc.store.Put(ctx, key, imaging.ContentType, encoded); err != nil {
		return "", err
	}

	if err := uc.repo.SetAvatar(ctx, salonID, stylistID, key); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "avatar_uploaded",
		Entity:   "stylist",
		EntityID: &stylistID,
	})
	return key, nil
}
