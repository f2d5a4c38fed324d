package service

import (
	"context"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"
)

// AccountService serves the caller's own profile, activity feed and notifications.
type AccountService interface {
	Profile(ctx context.Context, actor authz.Subject) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, actor authz.Subject, req dto.ProfileUpdateRequest) (*dto.UserResponse, error)

	ListActivities(ctx context.Context, actor authz.Subject, p repository.Pagination) (*dto.Paginated[dto.ActivityResponse], error)
	RecordActivity(ctx context.Context, actor authz.Subject, req dto.CreateActivityRequest) (*dto.ActivityResponse, error)

	ListNotifications(ctx context.Context, actor authz.Subject, p repository.Pagination) (*dto.Paginated[dto.NotificationResponse], error)
	MarkNotificationRead(ctx context.Context, actor authz.Subject, id int64) error
	MarkAllNotificationsRead(ctx context.Context, actor authz.Subject) (int64, error)
}

type accountService struct {
	repos repository.Repositories
}

func NewAccountService(repos repository.Repositories) AccountService {
	return &accountService{repos: repos}
}

func (s *accountService) Profile(ctx context.Context, actor authz.Subject) (*dto.UserResponse, error) {
	if err := authz.Authorize(actor, authz.Profile, authz.Read, actor.UserID); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the non-nil fields. Role, email and username never change here.
func (s *accountService) UpdateProfile(ctx context.Context, actor authz.Subject, req dto.ProfileUpdateRequest) (*dto.UserResponse, error) {
	if err := authz.Authorize(actor, authz.Profile, authz.Update, actor.UserID); err != nil {
		return nil, err
	}
	user, err := s.repos.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&user.FirstName, req.ResolvedFirstName())
	set(&user.LastName, req.ResolvedLastName())
	set(&user.Phone, req.Phone)
	set(&user.Location, req.Location)
	set(&user.Department, req.Department)
	set(&user.Position, req.Position)
	set(&user.Bio, req.Bio)
	set(&user.Avatar, req.Avatar)
	if req.JoinDate != nil {
		d, err := dto.ParseDate(*req.JoinDate)
		if err != nil {
			return nil, apperrors.Validation("join_date", "Date has wrong format. Use YYYY-MM-DD.")
		}
		user.JoinDate = d
	}

	if err := s.repos.Users.UpdateProfile(ctx, user); err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

func (s *accountService) ListActivities(ctx context.Context, actor authz.Subject, p repository.Pagination) (*dto.Paginated[dto.ActivityResponse], error) {
	if err := authz.Authorize(actor, authz.Activity, authz.List, actor.UserID); err != nil {
		return nil, err
	}
	p = p.Normalize()
	activities, total, err := s.repos.Activities.ListByUser(ctx, actor.UserID, p)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	results := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		results = append(results, dto.FromModelToActivityResponse(&activities[i]))
	}
	return dto.NewPaginated(results, total, p.Page, p.PageSize), nil
}

func (s *accountService) RecordActivity(ctx context.Context, actor authz.Subject, req dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if err := authz.Authorize(actor, authz.Activity, authz.Create, actor.UserID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("title", "This field may not be blank.")
	}
	if !isActivityType(req.Type) {
		return nil, apperrors.Validation("type", "\""+req.Type+"\" is not a valid choice.")
	}
	activity := &models.UserActivity{UserID: actor.UserID, Type: req.Type, Title: title}
	if err := s.repos.Activities.Create(ctx, activity); err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	resp := dto.FromModelToActivityResponse(activity)
	return &resp, nil
}

func (s *accountService) ListNotifications(ctx context.Context, actor authz.Subject, p repository.Pagination) (*dto.Paginated[dto.NotificationResponse], error) {
	if err := authz.Authorize(actor, authz.Notification, authz.List, actor.UserID); err != nil {
		return nil, err
	}
	p = p.Normalize()
	notifications, total, err := s.repos.Notifications.ListByUser(ctx, actor.UserID, p)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	results := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		results = append(results, dto.FromModelToNotificationResponse(&notifications[i]))
	}
	return dto.NewPaginated(results, total, p.Page, p.PageSize), nil
}

// MarkNotificationRead returns NotFound for ids that belong to someone else.
func (s *accountService) MarkNotificationRead(ctx context.Context, actor authz.Subject, id int64) error {
	if err := authz.Authorize(actor, authz.Notification, authz.Update, actor.UserID); err != nil {
		return err
	}
	found, err := s.repos.Notifications.MarkAsRead(ctx, actor.UserID, id)
	if err != nil {
		return apperrors.Internal(internalMessage, err)
	}
	if !found {
		return apperrors.NotFound("Notification not found")
	}
	return nil
}

func (s *accountService) MarkAllNotificationsRead(ctx context.Context, actor authz.Subject) (int64, error) {
	if err := authz.Authorize(actor, authz.Notification, authz.Update, actor.UserID); err != nil {
		return 0, err
	}
	n, err := s.repos.Notifications.MarkAllAsRead(ctx, actor.UserID)
	if err != nil {
		return 0, apperrors.Internal(internalMessage, err)
	}
	return n, nil
}

func isActivityType(t string) bool {
	for _, v := range models.ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}
