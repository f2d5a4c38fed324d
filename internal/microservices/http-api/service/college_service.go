package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"

	"gorm.io/gorm"
)

type CollegeService interface {
	ListColleges(ctx context.Context, search, ordering string) ([]dto.CollegeResponse, error)
	GetCollege(ctx context.Context, id int64) (*dto.CollegeResponse, error)
	CreateCollege(ctx context.Context, actor authz.Subject, req dto.CollegeRequest) (*dto.CollegeResponse, error)
	UpdateCollege(ctx context.Context, actor authz.Subject, id int64, req dto.CollegeRequest, partial bool) (*dto.CollegeResponse, error)
	DeleteCollege(ctx context.Context, actor authz.Subject, id int64) error
	Stats(ctx context.Context) (*dto.CollegeStatsResponse, error)

	ListDepartments(ctx context.Context, f repository.DepartmentFilter) ([]dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id int64) (*dto.DepartmentResponse, error)
	CreateDepartment(ctx context.Context, actor authz.Subject, req dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, actor authz.Subject, id int64, req dto.DepartmentRequest, partial bool) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, actor authz.Subject, id int64) error
}

type collegeService struct {
	tx    repository.Transactor
	repos repository.Repositories
}

func NewCollegeService(tx repository.Transactor, repos repository.Repositories) CollegeService {
	return &collegeService{tx: tx, repos: repos}
}

func (s *collegeService) ListColleges(ctx context.Context, search, ordering string) ([]dto.CollegeResponse, error) {
	colleges, err := s.repos.Colleges.List(ctx, strings.TrimSpace(search), ordering)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	out := make([]dto.CollegeResponse, 0, len(colleges))
	for i := range colleges {
		out = append(out, dto.FromModelToCollegeResponse(&colleges[i]))
	}
	return out, nil
}

func (s *collegeService) GetCollege(ctx context.Context, id int64) (*dto.CollegeResponse, error) {
	c, err := s.repos.Colleges.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "College not found")
	}
	resp := dto.FromModelToCollegeResponse(c)
	return &resp, nil
}

func (s *collegeService) CreateCollege(ctx context.Context, actor authz.Subject, req dto.CollegeRequest) (*dto.CollegeResponse, error) {
	if err := authz.Authorize(actor, authz.College, authz.Create, ""); err != nil {
		return nil, err
	}
	if req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}
	c := &models.College{}
	if err := applyCollegeRequest(c, req); err != nil {
		return nil, err
	}
	departments, err := departmentsFromInput(req.Departments)
	if err != nil {
		return nil, err
	}
	c.Departments = departments

	if err := s.repos.Colleges.Create(ctx, c); err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	return s.GetCollege(ctx, c.ID)
}

// UpdateCollege replaces the departments only when the request carries a non-empty list.
func (s *collegeService) UpdateCollege(ctx context.Context, actor authz.Subject, id int64, req dto.CollegeRequest, partial bool) (*dto.CollegeResponse, error) {
	if err := authz.Authorize(actor, authz.College, authz.Update, ""); err != nil {
		return nil, err
	}
	if !partial && req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}
	departments, err := departmentsFromInput(req.Departments)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		c, err := repos.Colleges.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "College not found")
		}
		if err := applyCollegeRequest(c, req); err != nil {
			return err
		}
		if err := repos.Colleges.Update(ctx, c); err != nil {
			return err
		}
		if len(departments) > 0 {
			return repos.Colleges.ReplaceDepartments(ctx, id, departments)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return s.GetCollege(ctx, id)
}

func (s *collegeService) DeleteCollege(ctx context.Context, actor authz.Subject, id int64) error {
	if err := authz.Authorize(actor, authz.College, authz.Delete, ""); err != nil {
		return err
	}
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Colleges.Delete(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "College not found")
	}
	return nil
}

func (s *collegeService) Stats(ctx context.Context) (*dto.CollegeStatsResponse, error) {
	colleges, err := s.repos.Colleges.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	departments, err := s.repos.Departments.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	counts, err := s.repos.Colleges.DepartmentCounts(ctx)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	return &dto.CollegeStatsResponse{
		TotalColleges:           colleges,
		TotalDepartments:        departments,
		CollegeDepartmentCounts: counts,
	}, nil
}

func (s *collegeService) ListDepartments(ctx context.Context, f repository.DepartmentFilter) ([]dto.DepartmentResponse, error) {
	if f.CollegeID != nil {
		if _, err := s.repos.Colleges.FindByID(ctx, *f.CollegeID); err != nil {
			return nil, notFoundOr(err, "College not found")
		}
	}
	departments, err := s.repos.Departments.List(ctx, f)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	out := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		out = append(out, dto.FromModelToDepartmentResponse(&departments[i]))
	}
	return out, nil
}

func (s *collegeService) GetDepartment(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	d, err := s.repos.Departments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Department not found")
	}
	resp := dto.FromModelToDepartmentResponse(d)
	return &resp, nil
}

func (s *collegeService) CreateDepartment(ctx context.Context, actor authz.Subject, req dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := authz.Authorize(actor, authz.Department, authz.Create, ""); err != nil {
		return nil, err
	}
	if req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}
	if req.College == nil {
		return nil, apperrors.Validation("college", "This field is required.")
	}
	d := &models.Department{}
	if err := s.applyDepartmentRequest(ctx, d, req); err != nil {
		return nil, err
	}
	if err := s.repos.Departments.Create(ctx, d); err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	resp := dto.FromModelToDepartmentResponse(d)
	return &resp, nil
}

func (s *collegeService) UpdateDepartment(ctx context.Context, actor authz.Subject, id int64, req dto.DepartmentRequest, partial bool) (*dto.DepartmentResponse, error) {
	if err := authz.Authorize(actor, authz.Department, authz.Update, ""); err != nil {
		return nil, err
	}
	if !partial && req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}
	d, err := s.repos.Departments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Department not found")
	}
	if err := s.applyDepartmentRequest(ctx, d, req); err != nil {
		return nil, err
	}
	if err := s.repos.Departments.Update(ctx, d); err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	resp := dto.FromModelToDepartmentResponse(d)
	return &resp, nil
}

func (s *collegeService) DeleteDepartment(ctx context.Context, actor authz.Subject, id int64) error {
	if err := authz.Authorize(actor, authz.Department, authz.Delete, ""); err != nil {
		return err
	}
	if err := s.repos.Departments.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Department not found")
	}
	return nil
}

func (s *collegeService) applyDepartmentRequest(ctx context.Context, d *models.Department, req dto.DepartmentRequest) error {
	if req.Name != nil {
		if d.Name = strings.TrimSpace(*req.Name); d.Name == "" {
			return apperrors.Validation("name", "This field may not be blank.")
		}
	}
	if req.LeaderName != nil {
		d.LeaderName = strings.TrimSpace(*req.LeaderName)
	}
	if req.Email != nil {
		d.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		d.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.College != nil {
		if _, err := s.repos.Colleges.FindByID(ctx, *req.College); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("college", fmt.Sprintf("Invalid pk %d - object does not exist.", *req.College))
			}
			return apperrors.Internal(internalMessage, err)
		}
		d.CollegeID = *req.College
	}
	return nil
}

func applyCollegeRequest(c *models.College, req dto.CollegeRequest) error {
	if req.Name != nil {
		if c.Name = strings.TrimSpace(*req.Name); c.Name == "" {
			return apperrors.Validation("name", "This field may not be blank.")
		}
	}
	if req.LeaderName != nil {
		c.LeaderName = strings.TrimSpace(*req.LeaderName)
	}
	if req.LeaderImage != nil {
		c.LeaderImage = strings.TrimSpace(*req.LeaderImage)
	}
	return nil
}

func departmentsFromInput(in []dto.DepartmentInput) ([]models.Department, error) {
	out := make([]models.Department, 0, len(in))
	for _, d := range in {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, apperrors.Validation("departments", "Each department needs a name.")
		}
		out = append(out, models.Department{
			Name:       name,
			LeaderName: strings.TrimSpace(d.LeaderName),
			Email:      strings.TrimSpace(d.Email),
			Phone:      strings.TrimSpace(d.Phone),
		})
	}
	return out, nil
}
