package handler

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/access"
	"github.com/snnyvrz/shelfshare/internal/model"
)

type RegisterRequest struct {
	Email       string      `json:"email" binding:"required,email,max=254"`
	Password    string      `json:"password" binding:"required,password"`
	FirstName   string      `json:"first_name" binding:"omitempty,max=150"`
	LastName    string      `json:"last_name" binding:"omitempty,max=150"`
	DateOfBirth *model.Date `json:"date_of_birth" swaggertype:"string" example:"1990-05-17"`
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UpdateProfileRequest struct {
	FirstName   *string     `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string     `json:"last_name" binding:"omitempty,max=150"`
	DateOfBirth *model.Date `json:"date_of_birth" swaggertype:"string" example:"1990-05-17"`
}

type GrantPermissionRequest struct {
	Codename string `json:"codename" binding:"required"`
}

type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	DateOfBirth  *model.Date `json:"date_of_birth" swaggertype:"string" example:"1990-05-17"`
	ProfilePhoto *string     `json:"profile_photo"`
	IsStaff      bool        `json:"is_staff"`
	IsSuperuser  bool        `json:"is_superuser"`
	Groups       []string    `json:"groups"`
	Permissions  []string    `json:"permissions"`
	DateJoined   time.Time   `json:"date_joined"`
	LastLogin    *time.Time  `json:"last_login"`
}

type UserResponse struct {
	Data User `json:"data"`
}

func toUser(u model.User) User {
	groups := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		groups = append(groups, g.Name)
	}
	sort.Strings(groups)

	id := access.IdentityFromUser(&u)
	perms := make([]string, 0, len(id.Permissions))
	for p := range id.Permissions {
		perms = append(perms, string(p))
	}
	sort.Strings(perms)

	return User{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DateOfBirth:  model.DateFromPtr(u.DateOfBirth),
		ProfilePhoto: u.ProfilePhoto,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		Groups:       groups,
		Permissions:  perms,
		DateJoined:   u.DateJoined,
		LastLogin:    u.LastLogin,
	}
}

type Group struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type ListGroupsResponse struct {
	Data []Group `json:"data"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required" swaggertype:"string"`
}

type Member struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type ListMembersResponse struct {
	Data []Member `json:"data"`
}
