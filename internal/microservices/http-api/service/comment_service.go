package service

import (
	"context"
	"fmt"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"
)

type CommentService interface {
	ListByAnnouncement(ctx context.Context, announcementID int64, p repository.Pagination) (*dto.Paginated[dto.CommentResponse], error)
	Create(ctx context.Context, actor authz.Subject, announcementID int64, content string) (*dto.CommentResponse, error)
	Get(ctx context.Context, id int64) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor authz.Subject, id int64, content string) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor authz.Subject, id int64) error
}

type commentService struct {
	tx       repository.Transactor
	repos    repository.Repositories
	cache    StatsCache
	notifier NotificationPublisher
}

// NewCommentService accepts a nil cache or notifier.
func NewCommentService(tx repository.Transactor, repos repository.Repositories, cache StatsCache, notifier NotificationPublisher) CommentService {
	return &commentService{tx: tx, repos: repos, cache: cache, notifier: notifier}
}

func (s *commentService) ListByAnnouncement(ctx context.Context, announcementID int64, p repository.Pagination) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.repos.Announcements.FindByID(ctx, announcementID); err != nil {
		return nil, notFoundOr(err, "Announcement not found")
	}
	p = p.Normalize()
	comments, total, err := s.repos.Comments.ListByAnnouncement(ctx, announcementID, p)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	results := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginated(results, total, p.Page, p.PageSize), nil
}

// Create stores the comment, records a feed entry for the commenter and notifies
// the announcement author when someone else commented.
func (s *commentService) Create(ctx context.Context, actor authz.Subject, announcementID int64, content string) (*dto.CommentResponse, error) {
	if err := authz.Authorize(actor, authz.Comment, authz.Create, ""); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content", "This field may not be blank.")
	}

	comment := &models.Comment{AnnouncementID: announcementID, AuthorID: actor.UserID, Content: content}
	var notification *models.Notification
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		announcement, err := repos.Announcements.FindByID(ctx, announcementID)
		if err != nil {
			return notFoundOr(err, "Announcement not found")
		}
		if err := repos.Comments.Create(ctx, comment); err != nil {
			return err
		}
		if err := repos.Activities.Create(ctx, &models.UserActivity{
			UserID: actor.UserID,
			Type:   models.ActivityComment,
			Title:  feedTitle("Commented on: ", announcement.Title),
		}); err != nil {
			return fmt.Errorf("record comment activity: %w", err)
		}

		if announcement.AuthorID == actor.UserID {
			return nil
		}
		commenter, err := repos.Users.FindByID(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("load commenter: %w", err)
		}
		n := &models.Notification{
			UserID: announcement.AuthorID,
			Title:  feedTitle(commenter.Username+" commented on: ", announcement.Title),
		}
		if err := repos.Notifications.Create(ctx, n); err != nil {
			return err
		}
		notification = n
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}

	// pushed only after commit
	if notification != nil && s.notifier != nil {
		s.notifier.PublishNotification(notification.UserID, dto.FromModelToNotificationResponse(notification))
	}
	invalidateStats(ctx, s.cache)
	return s.Get(ctx, comment.ID)
}

func (s *commentService) Get(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	c, err := s.repos.Comments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	resp := dto.FromModelToCommentResponse(c)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, actor authz.Subject, id int64, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content", "This field may not be blank.")
	}

	c, err := s.repos.Comments.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	if err := authz.Authorize(actor, authz.Comment, authz.Update, c.AuthorID); err != nil {
		return nil, err
	}
	c.Content = content
	if err := s.repos.Comments.UpdateContent(ctx, c); err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	resp := dto.FromModelToCommentResponse(c)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	c, err := s.repos.Comments.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Comment not found")
	}
	if err := authz.Authorize(actor, authz.Comment, authz.Delete, c.AuthorID); err != nil {
		return err
	}
	if err := s.repos.Comments.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Comment not found")
	}
	invalidateStats(ctx, s.cache)
	return nil
}
