package producthunt

import (
	"context"
	"fmt"
	"log/slog"
)

// FetchVotesOnly issues the reduced id+votesCount query. It never touches
// the cache: its value is freshness.
func (c *Client) FetchVotesOnly(ctx context.Context, date string, first int) (VoteCounts, error) {
	if first <= 0 {
		first = DefaultDayPageSize
	}

	variables := map[string]any{"first": first}
	if date != "" {
		if err := c.dayVariables(variables, date); err != nil {
			return nil, err
		}
	}

	body, err := c.doGraphQL(ctx, votesOperation, variables)
	if err != nil {
		return nil, fmt.Errorf("PostVotes: %w", err)
	}
	votes, err := parseVoteCounts(body)
	if err != nil {
		return nil, fmt.Errorf("parse PostVotes: %w", err)
	}
	return votes, nil
}

// FetchVotes returns current vote counts for the top posts of date.
// Callers should treat failures as non-fatal and keep showing the counts
// they already have.
func (c *Client) FetchVotes(ctx context.Context, date string, first int) (VoteCounts, error) {
	votes, err := c.FetchVotesOnly(ctx, date, first)
	if err != nil {
		return nil, err
	}
	slog.Debug("fetched vote counts", slog.String("date", date), slog.Int("posts", len(votes)))
	return votes, nil
}

// RefreshVotesAsync fetches fresh vote counts in the background and calls
// apply with the merged posts on success. Failures are logged and dropped;
// apply is not called. It never blocks the caller.
func (c *Client) RefreshVotesAsync(ctx context.Context, date string, posts []Post, apply func([]Post)) {
	if len(posts) == 0 {
		return
	}
	go func() {
		votes, err := c.FetchVotes(ctx, date, DefaultDayPageSize)
		if err != nil {
			slog.Warn("vote refresh failed, keeping previous counts",
				slog.String("date", date), slog.Any("error", err))
			return
		}
		apply(MergeVotes(posts, votes))
	}()
}

// MergeVotes returns a copy of posts with VotesCount replaced for every ID
// present in votes. Posts absent from votes keep their count.
func MergeVotes(posts []Post, votes VoteCounts) []Post {
	merged := make([]Post, len(posts))
	copy(merged, posts)
	if len(votes) == 0 {
		return merged
	}
	for i := range merged {
		if n, ok := votes[merged[i].ID]; ok {
			merged[i].VotesCount = n
		}
	}
	return merged
}
