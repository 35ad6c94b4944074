package cache

import "net/http"

// Transport adapts a Cache to http.RoundTripper so it can be installed
// into any client that fetches static assets.
type Transport struct {
	Cache *Cache
}

// RoundTrip implements http.RoundTripper by delegating to Handle.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.Cache.Handle(req)
}
