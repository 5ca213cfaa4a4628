package producthunt

import "net/http"

// defaultUserAgent identifies this client to the Product Hunt API.
const defaultUserAgent = "go-producthunt/1.0"

// setJSONHeaders sets the headers shared by OAuth and GraphQL requests.
func setJSONHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
}
