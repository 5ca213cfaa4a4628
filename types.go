package producthunt

import "time"

// User is a Product Hunt member: a post's hunter or one of its makers.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage,omitempty"`
	Headline     string `json:"headline,omitempty"`
}

// Media is an image or video attached to a post.
type Media struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// IsVideo reports whether the media item carries a playable video.
func (m Media) IsVideo() bool {
	return m.Type == "video" && m.VideoURL != ""
}

// Topic is a category a post is filed under.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TopicEdge wraps a Topic in the GraphQL connection shape.
type TopicEdge struct {
	Node Topic `json:"node"`
}

// TopicConnection is the topics list of a post.
type TopicConnection struct {
	Edges []TopicEdge `json:"edges"`
}

// Post is a single product launch.
type Post struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Tagline       string          `json:"tagline"`
	Description   string          `json:"description"`
	Slug          string          `json:"slug"`
	VotesCount    int             `json:"votesCount"`
	CommentsCount int             `json:"commentsCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	FeaturedAt    *time.Time      `json:"featuredAt,omitempty"`
	Website       string          `json:"website,omitempty"`
	URL           string          `json:"url"`
	Thumbnail     *Media          `json:"thumbnail,omitempty"`
	Media         []Media         `json:"media"`
	User          User            `json:"user"`
	Makers        []User          `json:"makers"`
	Topics        TopicConnection `json:"topics"`
}

// TopicNames returns the names of the post's topics in upstream order.
func (p Post) TopicNames() []string {
	names := make([]string, 0, len(p.Topics.Edges))
	for _, e := range p.Topics.Edges {
		names = append(names, e.Node.Name)
	}
	return names
}

// PostEdge is a post with its pagination cursor.
type PostEdge struct {
	Node   Post   `json:"node"`
	Cursor string `json:"cursor"`
}

// PageInfo is the cursor-pagination state of one posts query.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

// PostConnection is a page of posts.
type PostConnection struct {
	Edges    []PostEdge `json:"edges"`
	PageInfo PageInfo   `json:"pageInfo"`
}

// PostsResponse is either a single upstream page or a full aggregated day.
// Aggregated days always report HasNextPage=false.
// Values returned by the client may be shared with the cache and must not be mutated.
type PostsResponse struct {
	Posts PostConnection `json:"posts"`
}

// Nodes returns the posts without their cursors, in order.
func (r *PostsResponse) Nodes() []Post {
	posts := make([]Post, 0, len(r.Posts.Edges))
	for _, e := range r.Posts.Edges {
		posts = append(posts, e.Node)
	}
	return posts
}

// VoteCounts maps post ID to its current vote count.
type VoteCounts map[string]int
