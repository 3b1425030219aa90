package contract

import (
	"context"

	"medstory-be/internal/entity"
)

type ImageRepository interface {
	// Upload stores the photo under the user and returns its reference once the write is confirmed.
	Upload(ctx context.Context, uid string, data []byte, imageId string) (string, error)
	FetchRef(ctx context.Context, uid string, ref string) (*entity.ImageHandle, error)
	// Delete removes the photo. A nil ref is a no-op and a missing photo succeeds.
	Delete(ctx context.Context, uid string, ref *string) error
}
