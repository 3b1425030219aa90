package implementation

import (
	"context"
	"errors"
	"time"

	"medstory-be/internal/entity"
	"medstory-be/internal/mapper"
	"medstory-be/internal/metrics"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/repository/contract"
	"medstory-be/pkg/docstore"
)

type ProfileRepositoryImpl struct {
	driver docstore.Driver
	mapper *mapper.NoteMapper
	remote remoteCaller
}

func NewProfileRepository(driver docstore.Driver, m *metrics.Metrics, timeout time.Duration) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		driver: driver,
		mapper: mapper.NewNoteMapper(),
		remote: newRemoteCaller(driver.Name(), timeout, m),
	}
}

func profilePath(uid string) string {
	return "users/" + uid
}

func (r *ProfileRepositoryImpl) Save(ctx context.Context, profile *entity.Profile) error {
	if profile == nil || profile.Uid == "" {
		return &apperror.ValidationError{Field: "uid", Reason: "required"}
	}
	doc := r.mapper.ToProfileDocument(profile)
	return r.remote.do(ctx, "save_profile", func(ctx context.Context) error {
		return r.driver.Set(ctx, profilePath(profile.Uid), doc)
	})
}

func (r *ProfileRepositoryImpl) FindByUid(ctx context.Context, uid string) (*entity.Profile, error) {
	if uid == "" {
		return nil, &apperror.ValidationError{Field: "uid", Reason: "required"}
	}

	var doc map[string]interface{}
	err := r.remote.do(ctx, "read_profile", func(ctx context.Context) error {
		var err error
		doc, err = r.driver.Get(ctx, profilePath(uid))
		if errors.Is(err, docstore.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return r.mapper.ToProfile(doc)
}
