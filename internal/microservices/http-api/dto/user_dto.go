package dto

import "unionhub/internal/microservices/http-api/models"

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Phone      string  `json:"phone"`
	Location   string  `json:"location"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	JoinDate   *string `json:"join_date"`
	Bio        string  `json:"bio"`
	Avatar     string  `json:"avatar"`
	Role       string  `json:"role"`
}

func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Location:   u.Location,
		Department: u.Department,
		Position:   u.Position,
		JoinDate:   FormatDate(u.JoinDate),
		Bio:        u.Bio,
		Avatar:     u.Avatar,
		Role:       u.Role,
	}
}

// ProfileUpdateRequest accepts both camelCase and snake_case names.
// username, email and role are read-only and ignored.
type ProfileUpdateRequest struct {
	FirstName      *string `json:"firstName" binding:"omitempty,max=150"`
	LastName       *string `json:"lastName" binding:"omitempty,max=150"`
	FirstNameSnake *string `json:"first_name" binding:"omitempty,max=150"`
	LastNameSnake  *string `json:"last_name" binding:"omitempty,max=150"`
	Phone          *string `json:"phone" binding:"omitempty,max=20"`
	Location       *string `json:"location" binding:"omitempty,max=100"`
	Department     *string `json:"department" binding:"omitempty,max=100"`
	Position       *string `json:"position" binding:"omitempty,max=100"`
	JoinDate       *string `json:"join_date"`
	Bio            *string `json:"bio"`
	Avatar         *string `json:"avatar"`
}

func (r ProfileUpdateRequest) ResolvedFirstName() *string {
	if r.FirstName != nil {
		return r.FirstName
	}
	return r.FirstNameSnake
}

func (r ProfileUpdateRequest) ResolvedLastName() *string {
	if r.LastName != nil {
		return r.LastName
	}
	return r.LastNameSnake
}
