package producthunt

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// graphQLHandler answers the n-th (1-based) GraphQL call.
type graphQLHandler func(call int, req graphQLRequest) (status int, body any)

// fakeAPI is an in-process stand-in for the OAuth and GraphQL endpoints.
type fakeAPI struct {
	// oauth answers token requests. Default: a long-lived token.
	oauth func(call int, body map[string]string) (status int, resp any)
	// graphql answers GraphQL requests.
	graphql graphQLHandler

	srv          *httptest.Server
	oauthCalls   atomic.Int32
	graphqlCalls atomic.Int32

	mu       sync.Mutex
	requests []graphQLRequest
	auth     []string
}

func (f *fakeAPI) start(t *testing.T) *fakeAPI {
	t.Helper()
	if f.oauth == nil {
		f.oauth = func(call int, _ map[string]string) (int, any) {
			return http.StatusOK, map[string]any{
				"access_token": fmt.Sprintf("tok-%d", call),
				"token_type":   "bearer",
				"expires_in":   86400,
			}
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		call := int(f.oauthCalls.Add(1))
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		status, resp := f.oauth(call, body)
		writeJSON(w, status, resp)
	})
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		call := int(f.graphqlCalls.Add(1))
		var req graphQLRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		f.mu.Unlock()
		status, resp := f.graphql(call, req)
		writeJSON(w, status, resp)
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) config() ClientConfig {
	return ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		GraphQLURL:   f.srv.URL + "/graphql",
		OAuthURL:     f.srv.URL + "/oauth/token",
		Location:     time.UTC,
	}
}

func (f *fakeAPI) lastRequest() graphQLRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) lastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth[len(f.auth)-1]
}

func newTestClient(t *testing.T, f *fakeAPI, mutate ...func(*ClientConfig)) *Client {
	t.Helper()
	cfg := f.config()
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if s, ok := v.(string); ok {
		_, _ = w.Write([]byte(s))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// makeEdges builds n posts named prefix-1..prefix-n with descending votes.
func makeEdges(prefix string, n, topVotes int) []PostEdge {
	edges := make([]PostEdge, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%s-%d", prefix, i)
		edges = append(edges, PostEdge{
			Node: Post{
				ID:         id,
				Name:       "Product " + id,
				Tagline:    "Tagline " + id,
				VotesCount: topVotes - i,
				CreatedAt:  time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
				URL:        "https://www.producthunt.com/posts/" + id,
			},
			Cursor: "cursor-" + id,
		})
	}
	return edges
}

// pageBody wraps edges in a GraphQL data envelope.
func pageBody(edges []PostEdge, hasNext bool, endCursor string) map[string]any {
	return map[string]any{
		"data": PostsResponse{Posts: PostConnection{
			Edges:    edges,
			PageInfo: PageInfo{HasNextPage: hasNext, EndCursor: endCursor},
		}},
	}
}

// pagedHandler serves pages in order; the last page has hasNextPage=false.
func pagedHandler(pages ...[]PostEdge) graphQLHandler {
	return func(call int, _ graphQLRequest) (int, any) {
		if call > len(pages) {
			return http.StatusInternalServerError, `{"error":"unexpected page"}`
		}
		edges := pages[call-1]
		cursor := ""
		if len(edges) > 0 {
			cursor = edges[len(edges)-1].Cursor
		}
		return http.StatusOK, pageBody(edges, call < len(pages), cursor)
	}
}
