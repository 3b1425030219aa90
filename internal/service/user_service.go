// FILE: internal/service/user_service.go
package service

import (
	"context"
	"strings"

	"medstory-be/internal/entity"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/repository/contract"
)

type IUserService interface {
	SaveProfile(ctx context.Context, uid string, name string) (*entity.Profile, error)
	// ReadProfile returns nil, nil when the user never saved a profile.
	ReadProfile(ctx context.Context, uid string) (*entity.Profile, error)
}

type userService struct {
	profiles contract.ProfileRepository
}

func NewUserService(profiles contract.ProfileRepository) IUserService {
	return &userService{profiles: profiles}
}

func (s *userService) SaveProfile(ctx context.Context, uid string, name string) (*entity.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &apperror.ValidationError{Field: "name", Reason: "required"}
	}
	profile := &entity.Profile{Uid: uid, Name: name}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) ReadProfile(ctx context.Context, uid string) (*entity.Profile, error) {
	return s.profiles.FindByUid(ctx, uid)
}
