package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/pkg/apperrors"
	"unionhub/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const internalMessage = "operation failed"

// feedTitleLimit matches the varchar(255) title columns of activities and notifications.
const feedTitleLimit = 255

// StatsCache is the read-through cache behind the announcement stats endpoint.
type StatsCache interface {
	GetStats(ctx context.Context, dst any) (bool, error)
	SetStats(ctx context.Context, v any) error
	InvalidateStats(ctx context.Context) error
}

// NotificationPublisher pushes a freshly stored notification to the recipient's
// open connections. Implementations must not block.
type NotificationPublisher interface {
	PublishNotification(userID string, n dto.NotificationResponse)
}

// notFoundOr maps gorm.ErrRecordNotFound to a NOT_FOUND AppError and anything else to INTERNAL.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(msg)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Internal(internalMessage, err)
}

// passThrough keeps AppErrors raised inside a transaction and wraps the rest.
func passThrough(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Internal(internalMessage, err)
}

func invalidateStats(ctx context.Context, c StatsCache) {
	if c == nil {
		return
	}
	if err := c.InvalidateStats(ctx); err != nil {
		logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

// feedTitle joins a prefix and an announcement title, cut to feedTitleLimit runes.
func feedTitle(prefix, title string) string {
	r := []rune(prefix + title)
	if len(r) <= feedTitleLimit {
		return string(r)
	}
	return string(r[:feedTitleLimit])
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\-]+`)
var dashes = regexp.MustCompile(`-{2,}`)

// Slugify lowercases, dashes spaces and drops everything outside [a-z0-9-], capped at limit bytes.
func Slugify(s string, limit int) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = nonAlnum.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > limit {
		s = strings.Trim(s[:limit], "-")
	}
	return s
}

// uniqueSuffix appends a short uuid fragment, keeping the result within limit bytes.
func uniqueSuffix(slug string, limit int) string {
	suffix := uuid.New().String()[:8]
	if room := limit - len(suffix) - 1; len(slug) > room {
		slug = strings.Trim(slug[:room], "-")
	}
	if slug == "" {
		return suffix
	}
	return fmt.Sprintf("%s-%s", slug, suffix)
}
