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

type LeaderService interface {
	List(ctx context.Context, f repository.LeaderFilter) ([]dto.LeaderResponse, error)
	Get(ctx context.Context, id int64) (*dto.LeaderResponse, error)
	Create(ctx context.Context, actor authz.Subject, req dto.LeaderRequest) (*dto.LeaderResponse, error)
	Update(ctx context.Context, actor authz.Subject, id int64, req dto.LeaderRequest, partial bool) (*dto.LeaderResponse, error)
	Delete(ctx context.Context, actor authz.Subject, id int64) error
	Stats(ctx context.Context) (*dto.LeaderStatsResponse, error)
}

type leaderService struct {
	tx    repository.Transactor
	repos repository.Repositories
}

func NewLeaderService(tx repository.Transactor, repos repository.Repositories) LeaderService {
	return &leaderService{tx: tx, repos: repos}
}

func (s *leaderService) List(ctx context.Context, f repository.LeaderFilter) ([]dto.LeaderResponse, error) {
	f.Search = strings.TrimSpace(f.Search)
	leaders, err := s.repos.Leaders.List(ctx, f)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	out := make([]dto.LeaderResponse, 0, len(leaders))
	for i := range leaders {
		out = append(out, dto.FromModelToLeaderResponse(&leaders[i]))
	}
	return out, nil
}

func (s *leaderService) Get(ctx context.Context, id int64) (*dto.LeaderResponse, error) {
	l, err := s.repos.Leaders.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Leader not found")
	}
	resp := dto.FromModelToLeaderResponse(l)
	return &resp, nil
}

func (s *leaderService) Create(ctx context.Context, actor authz.Subject, req dto.LeaderRequest) (*dto.LeaderResponse, error) {
	if err := authz.Authorize(actor, authz.Leader, authz.Create, ""); err != nil {
		return nil, err
	}
	if req.Name == nil {
		return nil, apperrors.Validation("name", "This field is required.")
	}
	if req.Position == nil {
		return nil, apperrors.Validation("position", "This field is required.")
	}

	l := &models.Leader{IsCabinet: true}
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		if err := applyLeaderRequest(ctx, repos, l, req); err != nil {
			return err
		}
		if err := repos.Leaders.Create(ctx, l); err != nil {
			return err
		}
		return repos.Leaders.ReplaceAchievements(ctx, l.ID, trimAll(req.Achievements))
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return s.Get(ctx, l.ID)
}

// Update replaces achievements only when the request carries a non-empty list.
func (s *leaderService) Update(ctx context.Context, actor authz.Subject, id int64, req dto.LeaderRequest, partial bool) (*dto.LeaderResponse, error) {
	if err := authz.Authorize(actor, authz.Leader, authz.Update, ""); err != nil {
		return nil, err
	}
	if !partial {
		if req.Name == nil {
			return nil, apperrors.Validation("name", "This field is required.")
		}
		if req.Position == nil {
			return nil, apperrors.Validation("position", "This field is required.")
		}
	}

	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		l, err := repos.Leaders.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Leader not found")
		}
		if err := applyLeaderRequest(ctx, repos, l, req); err != nil {
			return err
		}
		if err := repos.Leaders.Update(ctx, l); err != nil {
			return err
		}
		if achievements := trimAll(req.Achievements); len(achievements) > 0 {
			return repos.Leaders.ReplaceAchievements(ctx, id, achievements)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return s.Get(ctx, id)
}

func (s *leaderService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	if err := authz.Authorize(actor, authz.Leader, authz.Delete, ""); err != nil {
		return err
	}
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Leaders.Delete(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "Leader not found")
	}
	return nil
}

func (s *leaderService) Stats(ctx context.Context) (*dto.LeaderStatsResponse, error) {
	stats, err := s.repos.Leaders.Stats(ctx)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	return &dto.LeaderStatsResponse{
		TotalLeaders:     stats.Total,
		TotalTeamSize:    stats.TotalTeamSize,
		DepartmentCounts: stats.DepartmentCounts,
		Departments:      stats.Departments,
	}, nil
}

func applyLeaderRequest(ctx context.Context, repos repository.Repositories, l *models.Leader, req dto.LeaderRequest) error {
	if req.Name != nil {
		if l.Name = strings.TrimSpace(*req.Name); l.Name == "" {
			return apperrors.Validation("name", "This field may not be blank.")
		}
	}
	if req.Position != nil {
		position := strings.TrimSpace(*req.Position)
		if !models.IsLeaderPosition(position) {
			return apperrors.Validation("position", fmt.Sprintf("%q is not a valid choice.", position))
		}
		l.Position = position
	}
	if req.Department != nil {
		l.Department = strings.TrimSpace(*req.Department)
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	if req.Email != nil {
		l.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		l.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Location != nil {
		l.Location = strings.TrimSpace(*req.Location)
	}
	if req.JoinDate != nil {
		d, err := dto.ParseDate(*req.JoinDate)
		if err != nil {
			return apperrors.Validation("join_date", "Date has wrong format. Use YYYY-MM-DD.")
		}
		l.JoinDate = d
	}
	if req.TeamSize != nil {
		if *req.TeamSize < 0 {
			return apperrors.Validation("team_size", "Ensure this value is greater than or equal to 0.")
		}
		l.TeamSize = *req.TeamSize
	}
	if req.Image != nil {
		l.Image = strings.TrimSpace(*req.Image)
	}
	if req.IsCabinet != nil {
		l.IsCabinet = *req.IsCabinet
	}
	if req.College != nil {
		if *req.College == 0 {
			l.CollegeID = nil
			l.College = nil
			return nil
		}
		college, err := repos.Colleges.FindByID(ctx, *req.College)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("college", fmt.Sprintf("Invalid pk %d - object does not exist.", *req.College))
		}
		if err != nil {
			return fmt.Errorf("find college: %w", err)
		}
		l.CollegeID = &college.ID
		l.College = nil
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
