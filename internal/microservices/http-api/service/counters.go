package service

import (
	"context"
	"fmt"
	"sort"

	"unionhub/internal/metrics"
	"unionhub/internal/microservices/http-api/repository"
)

// The two denormalized counters are always recomputed from their join tables,
// never incremented. Both functions expect repos bound to the transaction that
// made the mutation.

// recountLikes sets Announcement.likes to the number of like rows and returns it.
func recountLikes(ctx context.Context, repos repository.Repositories, announcementID int64) (int64, error) {
	n, err := repos.Likes.CountByAnnouncement(ctx, announcementID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	if err := repos.Announcements.SetLikes(ctx, announcementID, n); err != nil {
		return 0, fmt.Errorf("store likes: %w", err)
	}
	metrics.CounterRecounts.WithLabelValues("likes").Inc()
	return n, nil
}

// recountHashtags sets usage_count for every id in ids. Ids are processed in
// ascending order so concurrent writers lock hashtag rows in the same order.
func recountHashtags(ctx context.Context, repos repository.Repositories, ids ...[]int64) error {
	for _, id := range unionIDs(ids...) {
		n, err := repos.Hashtags.CountLinks(ctx, id)
		if err != nil {
			return fmt.Errorf("count hashtag %d links: %w", id, err)
		}
		if err := repos.Hashtags.SetUsageCount(ctx, id, n); err != nil {
			return fmt.Errorf("store hashtag %d usage: %w", id, err)
		}
		metrics.CounterRecounts.WithLabelValues("hashtag_usage").Inc()
	}
	return nil
}

// unionIDs merges the slices into one sorted, de-duplicated slice.
func unionIDs(sets ...[]int64) []int64 {
	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	for _, set := range sets {
		for _, id := range set {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
