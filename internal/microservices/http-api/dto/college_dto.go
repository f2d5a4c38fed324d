package dto

import "unionhub/internal/microservices/http-api/models"

type DepartmentResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LeaderName string `json:"leader_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func FromModelToDepartmentResponse(d *models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:         d.ID,
		Name:       d.Name,
		LeaderName: d.LeaderName,
		Email:      d.Email,
		Phone:      d.Phone,
	}
}

type CollegeResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	LeaderName  string               `json:"leader_name"`
	LeaderImage string               `json:"leader_image"`
	Departments []DepartmentResponse `json:"departments"`
}

func FromModelToCollegeResponse(c *models.College) CollegeResponse {
	resp := CollegeResponse{
		ID:          c.ID,
		Name:        c.Name,
		LeaderName:  c.LeaderName,
		LeaderImage: c.LeaderImage,
		Departments: make([]DepartmentResponse, 0, len(c.Departments)),
	}
	for i := range c.Departments {
		resp.Departments = append(resp.Departments, FromModelToDepartmentResponse(&c.Departments[i]))
	}
	return resp
}

// DepartmentInput is a department nested in a college payload.
type DepartmentInput struct {
	Name       string `json:"name" binding:"required,max=200"`
	LeaderName string `json:"leader_name" binding:"max=200"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"max=20"`
}

// CollegeRequest serves create, PUT and PATCH. A non-empty Departments list
// replaces the college's departments.
type CollegeRequest struct {
	Name        *string           `json:"name" binding:"omitempty,max=200"`
	LeaderName  *string           `json:"leader_name" binding:"omitempty,max=200"`
	LeaderImage *string           `json:"leader_image"`
	Departments []DepartmentInput `json:"departments" binding:"omitempty,dive"`
}

type DepartmentRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=200"`
	LeaderName *string `json:"leader_name" binding:"omitempty,max=200"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	College    *int64  `json:"college"`
}

type CollegeStatsResponse struct {
	TotalColleges           int64            `json:"total_colleges"`
	TotalDepartments        int64            `json:"total_departments"`
	CollegeDepartmentCounts map[string]int64 `json:"college_department_counts"`
}
