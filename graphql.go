package producthunt

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultPageSize is the page size of a standalone FetchPage call.
	DefaultPageSize = 20

	// DefaultDayPageSize is the page size used for day aggregation and vote refreshes.
	DefaultDayPageSize = 50

	// MaxPages bounds a single day aggregation. Reaching it stops the loop
	// and still returns and caches what was collected.
	MaxPages = 20

	// DayCacheTTL is how long fetched pages and aggregated days are cached.
	DayCacheTTL = 24 * time.Hour
)

// PageRequest selects one page of posts.
type PageRequest struct {
	// Date restricts posts to one calendar day (YYYY-MM-DD). Optional.
	Date string
	// First is the page size. Default: DefaultPageSize
	First int
	// After is the pagination cursor. Empty for the first page.
	After string
}

func pageCacheKey(date string, first int) string {
	return fmt.Sprintf("posts-%s-%d", date, first)
}

func dayCacheKey(date string) string {
	return "all-posts-" + date
}

// dayVariables adds the postedAfter/postedBefore bounds for date.
func (c *Client) dayVariables(variables map[string]any, date string) error {
	r, err := ParseDayRange(date, c.cfg.Location)
	if err != nil {
		return err
	}
	variables["postedAfter"] = r.PostedAfter()
	variables["postedBefore"] = r.PostedBefore()
	slog.Debug("date range", slog.String("date", date),
		slog.String("posted_after", r.PostedAfter()),
		slog.String("posted_before", r.PostedBefore()))
	return nil
}

// FetchPage fetches one page of vote-ranked posts.
// A first page for a given date is served from and stored in the cache.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (*PostsResponse, error) {
	if req.First <= 0 {
		req.First = DefaultPageSize
	}

	variables := map[string]any{"first": req.First}
	if req.After != "" {
		variables["after"] = req.After
	}

	var key string
	if req.Date != "" {
		if err := c.dayVariables(variables, req.Date); err != nil {
			return nil, err
		}
		if req.After == "" {
			key = pageCacheKey(req.Date, req.First)
			if page, ok := c.cache.Get(key); ok {
				return page, nil
			}
		}
	}

	body, err := c.doGraphQL(ctx, postsOperation, variables)
	if err != nil {
		return nil, fmt.Errorf("Posts: %w", err)
	}
	page, err := parsePostsPage(body)
	if err != nil {
		return nil, fmt.Errorf("parse Posts: %w", err)
	}

	slog.Debug("fetched posts page",
		slog.String("date", req.Date),
		slog.Int("edges", len(page.Posts.Edges)),
		slog.Bool("has_next", page.Posts.PageInfo.HasNextPage))

	if key != "" {
		c.cache.Set(key, page, DayCacheTTL)
	}
	return page, nil
}

// FetchAllPosts returns every post launched on date, in upstream vote order,
// by following pagination cursors until exhausted or MaxPages is reached.
// Results are cached for DayCacheTTL. Concurrent calls for the same date
// share one upstream page sequence.
//
// The aggregation is detached from ctx cancellation: an abandoned request
// still completes and populates the cache for later callers.
func (c *Client) FetchAllPosts(ctx context.Context, date string, pageSize int) (*PostsResponse, error) {
	if pageSize <= 0 {
		pageSize = DefaultDayPageSize
	}

	key := dayCacheKey(date)
	if res, ok := c.cache.Get(key); ok {
		return res, nil
	}

	v, err, shared := c.days.Do(key, func() (any, error) {
		if res, ok := c.cache.Get(key); ok {
			return res, nil
		}
		return c.aggregateDay(context.WithoutCancel(ctx), date, pageSize)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("day aggregation shared", slog.String("date", date))
	}
	return v.(*PostsResponse), nil
}

// aggregateDay drives FetchPage across cursors. Pages are fetched strictly
// in sequence since each request needs the previous page's end cursor.
func (c *Client) aggregateDay(ctx context.Context, date string, pageSize int) (*PostsResponse, error) {
	start := time.Now()
	edges := make([]PostEdge, 0, pageSize)
	var (
		after string
		last  PageInfo
		pages int
	)

	for {
		page, err := c.FetchPage(ctx, PageRequest{Date: date, First: pageSize, After: after})
		if err != nil {
			return nil, fmt.Errorf("fetch %s page %d: %w", date, pages+1, err)
		}
		pages++
		edges = append(edges, page.Posts.Edges...)
		last = page.Posts.PageInfo

		if !last.HasNextPage {
			break
		}
		if pages >= MaxPages {
			slog.Warn("page limit reached, returning partial day",
				slog.String("date", date),
				slog.Int("pages", pages),
				slog.Int("posts", len(edges)))
			break
		}
		if last.EndCursor == "" {
			slog.Warn("upstream reported more pages without a cursor, stopping",
				slog.String("date", date),
				slog.Int("pages", pages))
			break
		}
		after = last.EndCursor
	}

	res := &PostsResponse{Posts: PostConnection{
		Edges: edges,
		PageInfo: PageInfo{
			HasNextPage: false,
			EndCursor:   last.EndCursor,
		},
	}}
	if len(edges) > 0 {
		res.Posts.PageInfo.StartCursor = edges[0].Cursor
	}

	c.cache.Set(dayCacheKey(date), res, DayCacheTTL)
	slog.Info("day aggregated",
		slog.String("date", date),
		slog.Int("pages", pages),
		slog.Int("posts", len(edges)),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}
