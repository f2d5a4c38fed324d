package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"unionhub/internal/metrics"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"

	"gorm.io/gorm"
)

// NormalizeHashtagNames trims, lowercases and strips leading '#' from each name,
// drops empties and keeps the first occurrence of duplicates.
func NormalizeHashtagNames(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name := strings.ToLower(strings.TrimSpace(r))
		name = strings.TrimSpace(strings.TrimLeft(name, "#"))
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > models.MaxHashtagLength {
			return nil, apperrors.Validation("hashtag_names",
				fmt.Sprintf("Ensure each hashtag has no more than %d characters.", models.MaxHashtagLength))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// resolveHashtags get-or-creates a hashtag per normalized name and returns their ids
// in input order.
func resolveHashtags(ctx context.Context, repos repository.Repositories, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		slug := Slugify(name, models.MaxHashtagLength)
		if slug == "" {
			// names made only of symbols still need a unique slug
			slug = uniqueSuffix("tag", models.MaxHashtagLength)
		}
		h, created, err := repos.Hashtags.GetOrCreate(ctx, name, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// another hashtag already owns this slug
			h, created, err = repos.Hashtags.GetOrCreate(ctx, name, uniqueSuffix(slug, models.MaxHashtagLength))
		}
		if err != nil {
			return nil, fmt.Errorf("resolve hashtag %q: %w", name, err)
		}
		if created {
			metrics.HashtagsCreated.Inc()
		}
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// setAnnouncementHashtags replaces the announcement's hashtag set with names
// (already normalized) and recounts the union of old and new hashtags.
func setAnnouncementHashtags(ctx context.Context, repos repository.Repositories, announcementID int64, names []string) error {
	oldIDs, err := repos.Announcements.HashtagIDs(ctx, announcementID)
	if err != nil {
		return fmt.Errorf("load current hashtags: %w", err)
	}
	newIDs, err := resolveHashtags(ctx, repos, names)
	if err != nil {
		return err
	}
	if err := repos.Announcements.ReplaceHashtags(ctx, announcementID, newIDs); err != nil {
		return err
	}
	return recountHashtags(ctx, repos, oldIDs, newIDs)
}
