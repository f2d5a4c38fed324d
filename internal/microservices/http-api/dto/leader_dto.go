package dto

import "unionhub/internal/microservices/http-api/models"

type AchievementResponse struct {
	ID          int64  `json:"id"`
	Achievement string `json:"achievement"`
	Order       int    `json:"order"`
}

type LeaderResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Position     string                `json:"position"`
	Department   string                `json:"department"`
	Description  string                `json:"description"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Location     string                `json:"location"`
	JoinDate     *string               `json:"join_date"`
	TeamSize     int                   `json:"team_size"`
	Image        string                `json:"image"`
	IsCabinet    bool                  `json:"is_cabinet"`
	College      *CollegeResponse      `json:"college"`
	Achievements []AchievementResponse `json:"achievements"`
}

func FromModelToLeaderResponse(l *models.Leader) LeaderResponse {
	resp := LeaderResponse{
		ID:           l.ID,
		Name:         l.Name,
		Position:     l.Position,
		Department:   l.Department,
		Description:  l.Description,
		Email:        l.Email,
		Phone:        l.Phone,
		Location:     l.Location,
		JoinDate:     FormatDate(l.JoinDate),
		TeamSize:     l.TeamSize,
		Image:        l.Image,
		IsCabinet:    l.IsCabinet,
		Achievements: make([]AchievementResponse, 0, len(l.Achievements)),
	}
	if l.College != nil {
		c := FromModelToCollegeResponse(l.College)
		resp.College = &c
	}
	for _, a := range l.Achievements {
		resp.Achievements = append(resp.Achievements, AchievementResponse{ID: a.ID, Achievement: a.Achievement, Order: a.Order})
	}
	return resp
}

// LeaderRequest serves create, PUT and PATCH. A non-empty Achievements list
// replaces the stored achievements in the given order.
type LeaderRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=200"`
	Position     *string  `json:"position"`
	Department   *string  `json:"department" binding:"omitempty,max=200"`
	Description  *string  `json:"description"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	Phone        *string  `json:"phone" binding:"omitempty,max=20"`
	Location     *string  `json:"location" binding:"omitempty,max=200"`
	JoinDate     *string  `json:"join_date"`
	TeamSize     *int     `json:"team_size" binding:"omitempty,min=0"`
	Image        *string  `json:"image"`
	IsCabinet    *bool    `json:"is_cabinet"`
	College      *int64   `json:"college"`
	Achievements []string `json:"achievements" binding:"omitempty,dive,max=500"`
}

type LeaderStatsResponse struct {
	TotalLeaders     int64            `json:"total_leaders"`
	TotalTeamSize    int64            `json:"total_team_size"`
	DepartmentCounts map[string]int64 `json:"department_counts"`
	Departments      []string         `json:"departments"`
}
