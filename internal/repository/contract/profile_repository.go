package contract

import (
	"context"

	"medstory-be/internal/entity"
)

type ProfileRepository interface {
	Save(ctx context.Context, profile *entity.Profile) error
	// FindByUid returns nil, nil when the user has no profile yet.
	FindByUid(ctx context.Context, uid string) (*entity.Profile, error)
}
