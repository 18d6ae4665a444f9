package child

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/media"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/storage"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

var ErrUploadsDisabled = httperr.New(http.StatusServiceUnavailable, "uploads_disabled", "File uploads are not configured")

// UploadPhoto normalizes a child's picture to WebP and stores it.
type UploadPhoto struct {
	store    store.Store
	uploader storage.Uploader
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewUploadPhoto(
	s store.Store,
	uploader storage.Uploader,
	audit *audit.Dispatcher,
) *UploadPhoto {
	return &UploadPhoto{
		store:    s,
		uploader: uploader,
		audit:    audit,
		now:      time.Now,
	}
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	actor access.Principal,
	childID uuid.UUID,
	image io.Reader,
) (*models.Child, error) {

	c, err := uc.store.Children().Get(ctx, childID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, httperr.ErrNotFound("child_not_found", "Child not found")
		}
		return nil, err
	}

	if !actor.Owns(c.ParentID) {
		return nil, httperr.ErrForbidden("Not authorized to update this child")
	}

	data, err := media.ToWebP(image, media.MaxSide)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_image", "Photo must be a JPEG, PNG, GIF, BMP or WebP image")
	}

	key := fmt.Sprintf("children/%s/%d.webp", c.ID, uc.now().UnixNano())
	url, err := uc.uploader.Upload(ctx, key, media.ContentType, data)
	if errors.Is(err, storage.ErrDisabled) {
		return nil, ErrUploadsDisabled
	}
	if err != nil {
		return nil, err
	}

	c.Photo = url
	if err := uc.store.Children().Update(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Record(actor.ID, "child_photo_uploaded", "child", c.ID, map[string]any{"key": key})

	return c, nil
}
