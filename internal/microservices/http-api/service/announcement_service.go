package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"unionhub/internal/metrics"
	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"
	"unionhub/internal/pkg/logger"

	"gorm.io/gorm"
)

const popularHashtagLimit = 10

type AnnouncementService interface {
	List(ctx context.Context, f repository.AnnouncementFilter) (*dto.Paginated[dto.AnnouncementResponse], error)
	Get(ctx context.Context, actor authz.Subject, id int64) (*dto.AnnouncementDetailResponse, error)
	Create(ctx context.Context, actor authz.Subject, req dto.CreateAnnouncementRequest) (*dto.AnnouncementDetailResponse, error)
	// Update applies req. With partial false (PUT) title and description are required.
	Update(ctx context.Context, actor authz.Subject, id int64, req dto.UpdateAnnouncementRequest, partial bool) (*dto.AnnouncementDetailResponse, error)
	Delete(ctx context.Context, actor authz.Subject, id int64) error
	TogglePin(ctx context.Context, actor authz.Subject, id int64) (*dto.PinResponse, error)
	Stats(ctx context.Context) (*dto.AnnouncementStatsResponse, error)
}

type announcementService struct {
	tx    repository.Transactor
	repos repository.Repositories
	cache StatsCache
}

func NewAnnouncementService(tx repository.Transactor, repos repository.Repositories, cache StatsCache) AnnouncementService {
	return &announcementService{tx: tx, repos: repos, cache: cache}
}

func (s *announcementService) List(ctx context.Context, f repository.AnnouncementFilter) (*dto.Paginated[dto.AnnouncementResponse], error) {
	f.PublishedOnly = true
	f.Pagination = f.Pagination.Normalize()
	if len(f.Hashtags) > 0 {
		names, err := NormalizeHashtagNames(f.Hashtags)
		if err != nil {
			return nil, err
		}
		f.Hashtags = names
	}

	list, total, err := s.repos.Announcements.List(ctx, f)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}

	ids := make([]int64, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	counts, err := s.repos.Comments.CountByAnnouncements(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}

	results := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		results = append(results, dto.FromModelToAnnouncementResponse(&list[i], counts[list[i].ID]))
	}
	return dto.NewPaginated(results, total, f.Page, f.PageSize), nil
}

// Get returns the detail view. Drafts are visible only to their author and admins.
func (s *announcementService) Get(ctx context.Context, actor authz.Subject, id int64) (*dto.AnnouncementDetailResponse, error) {
	a, err := s.repos.Announcements.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Announcement not found")
	}
	if !a.IsPublished && !actor.IsAdmin() && actor.UserID != a.AuthorID {
		return nil, apperrors.NotFound("Announcement not found")
	}
	resp := dto.FromModelToAnnouncementDetailResponse(a)
	return &resp, nil
}

func (s *announcementService) Create(ctx context.Context, actor authz.Subject, req dto.CreateAnnouncementRequest) (*dto.AnnouncementDetailResponse, error) {
	if err := authz.Authorize(actor, authz.Announcement, authz.Create, ""); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" {
		return nil, apperrors.Validation("title", "This field may not be blank.")
	}
	if description == "" {
		return nil, apperrors.Validation("description", "This field may not be blank.")
	}
	names, err := NormalizeHashtagNames(req.HashtagNames)
	if err != nil {
		return nil, err
	}

	a := &models.Announcement{
		Title:       title,
		Description: description,
		AuthorID:    actor.UserID,
		Media:       strings.TrimSpace(req.Media),
		IsPublished: true,
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
	}
	// pinning is an admin action
	if req.IsPinned != nil && actor.IsAdmin() {
		a.IsPinned = *req.IsPinned
	}

	err = s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		if req.CategoryID != nil && *req.CategoryID != 0 {
			categoryID, err := activeCategoryID(ctx, repos, *req.CategoryID)
			if err != nil {
				return err
			}
			a.CategoryID = categoryID
		}
		if err := repos.Announcements.Create(ctx, a); err != nil {
			return err
		}
		if len(names) > 0 {
			if err := setAnnouncementHashtags(ctx, repos, a.ID, names); err != nil {
				return err
			}
		}
		return repos.Activities.Create(ctx, &models.UserActivity{
			UserID: actor.UserID,
			Type:   models.ActivityPost,
			Title:  feedTitle("Posted announcement: ", a.Title),
		})
	})
	if err != nil {
		return nil, passThrough(err)
	}

	logger.Info().Int64("announcement_id", a.ID).Str("author_id", actor.UserID).Msg("announcement created")
	invalidateStats(ctx, s.cache)
	return s.detail(ctx, a.ID)
}

func (s *announcementService) Update(ctx context.Context, actor authz.Subject, id int64, req dto.UpdateAnnouncementRequest, partial bool) (*dto.AnnouncementDetailResponse, error) {
	if !partial {
		if req.Title == nil {
			return nil, apperrors.Validation("title", "This field is required.")
		}
		if req.Description == nil {
			return nil, apperrors.Validation("description", "This field is required.")
		}
	}

	var names []string
	if req.HashtagNames != nil {
		var err error
		if names, err = NormalizeHashtagNames(*req.HashtagNames); err != nil {
			return nil, err
		}
	}

	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		a, err := repos.Announcements.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Announcement not found")
		}
		if err := authz.Authorize(actor, authz.Announcement, authz.Update, a.AuthorID); err != nil {
			return err
		}

		if req.Title != nil {
			if a.Title = strings.TrimSpace(*req.Title); a.Title == "" {
				return apperrors.Validation("title", "This field may not be blank.")
			}
		}
		if req.Description != nil {
			if a.Description = strings.TrimSpace(*req.Description); a.Description == "" {
				return apperrors.Validation("description", "This field may not be blank.")
			}
		}
		if req.Media != nil {
			a.Media = strings.TrimSpace(*req.Media)
		}
		if req.IsPublished != nil {
			a.IsPublished = *req.IsPublished
		}
		if req.IsPinned != nil && actor.IsAdmin() {
			a.IsPinned = *req.IsPinned
		}
		if req.CategoryID != nil {
			// unknown or inactive categories clear the reference
			if a.CategoryID, err = activeCategoryID(ctx, repos, *req.CategoryID); err != nil {
				return err
			}
		}

		if err := repos.Announcements.Update(ctx, a); err != nil {
			return err
		}
		if req.HashtagNames != nil {
			return setAnnouncementHashtags(ctx, repos, a.ID, names)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}

	invalidateStats(ctx, s.cache)
	return s.detail(ctx, id)
}

// Delete removes the announcement and recounts the hashtags it carried.
func (s *announcementService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		a, err := repos.Announcements.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Announcement not found")
		}
		if err := authz.Authorize(actor, authz.Announcement, authz.Delete, a.AuthorID); err != nil {
			return err
		}
		oldIDs, err := repos.Announcements.HashtagIDs(ctx, id)
		if err != nil {
			return fmt.Errorf("load hashtags: %w", err)
		}
		if err := repos.Announcements.Delete(ctx, id); err != nil {
			return notFoundOr(err, "Announcement not found")
		}
		return recountHashtags(ctx, repos, oldIDs)
	})
	if err != nil {
		return passThrough(err)
	}

	logger.Info().Int64("announcement_id", id).Str("user_id", actor.UserID).Msg("announcement deleted")
	invalidateStats(ctx, s.cache)
	return nil
}

func (s *announcementService) TogglePin(ctx context.Context, actor authz.Subject, id int64) (*dto.PinResponse, error) {
	if err := authz.Authorize(actor, authz.Announcement, authz.Pin, ""); err != nil {
		return nil, err
	}

	var pinned bool
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		a, err := repos.Announcements.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Announcement not found")
		}
		pinned = !a.IsPinned
		return repos.Announcements.SetPinned(ctx, id, pinned)
	})
	if err != nil {
		return nil, passThrough(err)
	}

	action := "unpinned"
	if pinned {
		action = "pinned"
	}
	return &dto.PinResponse{Success: true, Action: action, IsPinned: pinned}, nil
}

// Stats serves from the cache when possible. Cache failures fall back to the database.
func (s *announcementService) Stats(ctx context.Context) (*dto.AnnouncementStatsResponse, error) {
	if s.cache != nil {
		var cached dto.AnnouncementStatsResponse
		hit, err := s.cache.GetStats(ctx, &cached)
		switch {
		case err != nil:
			metrics.StatsCacheLookups.WithLabelValues("error").Inc()
			logger.Warn().Err(err).Msg("stats cache read failed")
		case hit:
			metrics.StatsCacheLookups.WithLabelValues("hit").Inc()
			return &cached, nil
		default:
			metrics.StatsCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *announcementService) computeStats(ctx context.Context) (*dto.AnnouncementStatsResponse, error) {
	var (
		stats = &dto.AnnouncementStatsResponse{}
		err   error
	)
	if stats.TotalAnnouncements, err = s.repos.Announcements.CountPublished(ctx); err != nil {
		return nil, fmt.Errorf("count announcements: %w", err)
	}
	if stats.TotalComments, err = s.repos.Comments.Count(ctx); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if stats.TotalLikes, err = s.repos.Likes.Count(ctx); err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	if stats.TotalCategories, err = s.repos.Categories.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if stats.TotalHashtags, err = s.repos.Hashtags.Count(ctx); err != nil {
		return nil, fmt.Errorf("count hashtags: %w", err)
	}

	perCategory, err := s.repos.Categories.PublishedCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	stats.CategoryStats = make([]dto.CategoryStat, 0, len(perCategory))
	for _, c := range perCategory {
		stats.CategoryStats = append(stats.CategoryStats, dto.CategoryStat(c))
	}

	popular, err := s.repos.Hashtags.Popular(ctx, popularHashtagLimit)
	if err != nil {
		return nil, fmt.Errorf("popular hashtags: %w", err)
	}
	stats.PopularHashtags = make([]dto.PopularHashtag, 0, len(popular))
	for _, h := range popular {
		stats.PopularHashtags = append(stats.PopularHashtags, dto.PopularHashtag{ID: h.ID, Name: h.Name, UsageCount: h.UsageCount})
	}
	return stats, nil
}

func (s *announcementService) detail(ctx context.Context, id int64) (*dto.AnnouncementDetailResponse, error) {
	a, err := s.repos.Announcements.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Announcement not found")
	}
	resp := dto.FromModelToAnnouncementDetailResponse(a)
	return &resp, nil
}

// activeCategoryID returns a pointer to id when it names an active category and nil otherwise.
func activeCategoryID(ctx context.Context, repos repository.Repositories, id int64) (*int64, error) {
	c, err := repos.Categories.FindActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c.ID, nil
}
