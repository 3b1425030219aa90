package service

import (
	"context"

	"medstory-be/internal/entity"
	"medstory-be/internal/notify"
	"medstory-be/internal/repository/contract"

	"github.com/stretchr/testify/mock"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Put(ctx context.Context, uid string, note *entity.Note) (contract.DocumentRef, error) {
	args := m.Called(ctx, uid, note)
	return args.Get(0).(contract.DocumentRef), args.Error(1)
}

func (m *mockNoteRepository) Query(ctx context.Context, uid string, section *string) ([]*entity.Note, error) {
	args := m.Called(ctx, uid, section)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepository) Remove(ctx context.Context, uid string, note *entity.Note) error {
	return m.Called(ctx, uid, note).Error(0)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) Upload(ctx context.Context, uid string, data []byte, imageId string) (string, error) {
	args := m.Called(ctx, uid, data, imageId)
	return args.String(0), args.Error(1)
}

func (m *mockImageRepository) FetchRef(ctx context.Context, uid string, ref string) (*entity.ImageHandle, error) {
	args := m.Called(ctx, uid, ref)
	h, _ := args.Get(0).(*entity.ImageHandle)
	return h, args.Error(1)
}

func (m *mockImageRepository) Delete(ctx context.Context, uid string, ref *string) error {
	return m.Called(ctx, uid, ref).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) UploadCompleted(ctx context.Context, evt notify.UploadCompleted) error {
	return m.Called(ctx, evt).Error(0)
}

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepository) FindByUid(ctx context.Context, uid string) (*entity.Profile, error) {
	args := m.Called(ctx, uid)
	p, _ := args.Get(0).(*entity.Profile)
	return p, args.Error(1)
}
