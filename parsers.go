package producthunt

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errNoData = errors.New("response has no data")

// parsePostsPage parses the Posts GraphQL response.
func parsePostsPage(body []byte) (*PostsResponse, error) {
	var raw struct {
		Data *PostsResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal Posts: %w", err)
	}
	if raw.Data == nil {
		return nil, fmt.Errorf("Posts: %w", errNoData)
	}
	if raw.Data.Posts.Edges == nil {
		raw.Data.Posts.Edges = []PostEdge{}
	}
	return raw.Data, nil
}

// parseVoteCounts parses the PostVotes GraphQL response into an id→votes mapping.
func parseVoteCounts(body []byte) (VoteCounts, error) {
	var raw struct {
		Data *struct {
			Posts struct {
				Edges []struct {
					Node struct {
						ID         string `json:"id"`
						VotesCount int    `json:"votesCount"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"posts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal PostVotes: %w", err)
	}
	if raw.Data == nil {
		return nil, fmt.Errorf("PostVotes: %w", errNoData)
	}

	votes := make(VoteCounts, len(raw.Data.Posts.Edges))
	for _, e := range raw.Data.Posts.Edges {
		if e.Node.ID == "" {
			continue
		}
		votes[e.Node.ID] = e.Node.VotesCount
	}
	return votes, nil
}
