package dto

import "github.com/yigit/institute/internal/app/models"

// UserDTO is the wire shape of a user; the password hash never leaves the server.
type UserDTO struct {
	ID             int64  `json:"userId" example:"5"`
	Name           string `json:"name" example:"Ada Lovelace"`
	Email          string `json:"email" example:"ada@institute.edu"`
	Role           string `json:"role" example:"STUDENT" enums:"ADMIN,TEACHER,STUDENT"`
	ContactDetails string `json:"contactDetails,omitempty" example:"+44 20 7946 0000"`
}

// UserInput either references an existing user by id or describes a new one inline.
type UserInput struct {
	ID             int64  `json:"userId" binding:"omitempty,gt=0"`
	Name           string `json:"name" binding:"omitempty,max=100"`
	Email          string `json:"email" binding:"omitempty,email"`
	Password       string `json:"password" binding:"omitempty,min=8"`
	ContactDetails string `json:"contactDetails"`
}

// FromUser projects a user; nil in, nil out.
func FromUser(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		ContactDetails: u.ContactDetails,
	}
}

// FromUsers projects a list of users
func FromUsers(users []*models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		if u != nil {
			out = append(out, *FromUser(u))
		}
	}
	return out
}

// ToUser builds a new user for inline creation. The password is left for the caller to hash.
func (in *UserInput) ToUser(role models.RoleType) *models.User {
	return &models.User{
		Name:           in.Name,
		Email:          in.Email,
		Role:           role,
		ContactDetails: in.ContactDetails,
	}
}

// Complete reports whether enough fields are present to create a new user.
func (in *UserInput) Complete() bool {
	return in != nil && in.Name != "" && in.Email != "" && in.Password != ""
}
