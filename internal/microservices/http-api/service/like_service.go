package service

import (
	"context"
	"errors"
	"fmt"

	"unionhub/internal/metrics"
	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

type LikeService interface {
	Toggle(ctx context.Context, actor authz.Subject, announcementID int64) (*dto.LikeResponse, error)
}

type likeService struct {
	tx    repository.Transactor
	cache StatsCache
}

func NewLikeService(tx repository.Transactor, cache StatsCache) LikeService {
	return &likeService{tx: tx, cache: cache}
}

// Toggle flips the caller's like on the announcement and returns the new total.
// A concurrent duplicate insert resolves to "liked" without a second activity.
func (s *likeService) Toggle(ctx context.Context, actor authz.Subject, announcementID int64) (*dto.LikeResponse, error) {
	if err := authz.Authorize(actor, authz.Like, authz.Toggle, ""); err != nil {
		return nil, err
	}

	var action string
	var likes int64
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		announcement, err := repos.Announcements.FindByID(ctx, announcementID)
		if err != nil {
			return notFoundOr(err, "Announcement not found")
		}

		existing, err := repos.Likes.Find(ctx, announcementID, actor.UserID)
		switch {
		case err == nil:
			if err := repos.Likes.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("delete like: %w", err)
			}
			action = ActionUnliked
		case errors.Is(err, gorm.ErrRecordNotFound):
			inserted, err := repos.Likes.Insert(ctx, &models.AnnouncementLike{
				AnnouncementID: announcementID,
				UserID:         actor.UserID,
			})
			if err != nil {
				return err
			}
			if inserted {
				activity := &models.UserActivity{
					UserID: actor.UserID,
					Type:   models.ActivityLike,
					Title:  feedTitle("Liked: ", announcement.Title),
				}
				if err := repos.Activities.Create(ctx, activity); err != nil {
					return fmt.Errorf("record like activity: %w", err)
				}
			}
			action = ActionLiked
		default:
			return fmt.Errorf("find like: %w", err)
		}

		likes, err = recountLikes(ctx, repos, announcementID)
		return err
	})
	if err != nil {
		return nil, passThrough(err)
	}

	metrics.LikeToggles.WithLabelValues(action).Inc()
	invalidateStats(ctx, s.cache)
	return &dto.LikeResponse{Success: true, Action: action, Likes: likes}, nil
}
