package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medstory-be/internal/entity"
	"medstory-be/internal/metrics"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/pkg/logger"
	"medstory-be/internal/repository/contract"
	"medstory-be/pkg/blobstore"

	"github.com/gabriel-vasile/mimetype"
	"github.com/patrickmn/go-cache"
)

const (
	imageRepositoryModule = "IMAGE_REPOSITORY"
	// DefaultPresignTTL is how long a fetched image URL stays valid.
	DefaultPresignTTL = 15 * time.Minute
)

type ImageRepositoryImpl struct {
	driver     blobstore.Driver
	remote     remoteCaller
	presignTTL time.Duration
	urls       *cache.Cache
	logger     logger.ILogger
	now        func() time.Time
}

func NewImageRepository(driver blobstore.Driver, m *metrics.Metrics, timeout, presignTTL time.Duration, log logger.ILogger) contract.ImageRepository {
	if presignTTL <= 0 {
		presignTTL = DefaultPresignTTL
	}
	return &ImageRepositoryImpl{
		driver:     driver,
		remote:     newRemoteCaller(driver.Name(), timeout, m),
		presignTTL: presignTTL,
		// URLs are dropped a tenth of their lifetime before they expire.
		urls:   cache.New(presignTTL-presignTTL/10, presignTTL),
		logger: log,
		now:    time.Now,
	}
}

// blobKey maps a reference "{uid}/{id}" to its storage key "users/{uid}/{id}".
func blobKey(ref string) string {
	return "users/" + ref
}

func (r *ImageRepositoryImpl) Upload(ctx context.Context, uid string, data []byte, imageId string) (string, error) {
	if uid == "" {
		return "", &apperror.ValidationError{Field: "uid", Reason: "required"}
	}
	if len(data) == 0 {
		return "", &apperror.ValidationError{Field: "imageData", Reason: "empty"}
	}
	clean := entity.SanitizeImageID(imageId)
	if clean == "" {
		return "", &apperror.ValidationError{Field: "imageId", Reason: fmt.Sprintf("%q has no digits or dots", imageId)}
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", &apperror.ValidationError{Field: "imageData", Reason: fmt.Sprintf("content type %s is not an image", mtype.String())}
	}

	ref := uid + "/" + clean
	key := blobKey(ref)

	err := r.remote.do(ctx, "upload", func(ctx context.Context) error {
		return r.driver.Put(ctx, key, data, mtype.String())
	})
	if err != nil {
		return "", err
	}

	// The write only counts once the store reports the full payload.
	err = r.remote.do(ctx, "confirm", func(ctx context.Context) error {
		obj, err := r.driver.Stat(ctx, key)
		if errors.Is(err, blobstore.ErrNotFound) {
			return fmt.Errorf("upload of %s not confirmed: object missing", key)
		}
		if err != nil {
			return err
		}
		if obj.Size != int64(len(data)) {
			return fmt.Errorf("upload of %s not confirmed: stored %d of %d bytes", key, obj.Size, len(data))
		}
		return nil
	})
	if err != nil {
		r.logger.Error(imageRepositoryModule, "Upload not confirmed", map[string]interface{}{"key": key, "error": err.Error()})
		return "", err
	}

	r.urls.Delete(key)
	r.logger.Debug(imageRepositoryModule, "Image uploaded", map[string]interface{}{"key": key, "size": len(data)})
	return ref, nil
}

func (r *ImageRepositoryImpl) FetchRef(ctx context.Context, uid string, ref string) (*entity.ImageHandle, error) {
	if ref == "" {
		return &entity.ImageHandle{Placeholder: true}, nil
	}
	if !entity.RefOwnedBy(ref, uid) {
		return nil, &apperror.ValidationError{Field: "ref", Reason: "not scoped to owner"}
	}

	key := blobKey(ref)
	if cached, ok := r.urls.Get(key); ok {
		h := *cached.(*entity.ImageHandle)
		return &h, nil
	}

	var url string
	err := r.remote.do(ctx, "presign", func(ctx context.Context) error {
		var err error
		url, err = r.driver.PresignGet(ctx, key, r.presignTTL)
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if url == "" {
		return &entity.ImageHandle{Ref: ref, Placeholder: true}, nil
	}

	h := &entity.ImageHandle{Ref: ref, URL: url, ExpiresAt: r.now().Add(r.presignTTL)}
	r.urls.Set(key, h, cache.DefaultExpiration)

	out := *h
	return &out, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, uid string, ref *string) error {
	if ref == nil || *ref == "" {
		return nil
	}
	if !entity.RefOwnedBy(*ref, uid) {
		return &apperror.ValidationError{Field: "ref", Reason: "not scoped to owner"}
	}

	key := blobKey(*ref)
	err := r.remote.do(ctx, "delete", func(ctx context.Context) error {
		return r.driver.Delete(ctx, key)
	})
	if err != nil {
		return err
	}
	r.urls.Delete(key)
	return nil
}
