package dto

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ProfileResponse struct {
	Uid  string `json:"uid"`
	Name string `json:"name"`
}
