// Package cache implements the offline resource cache: a named, persistent
// store of response snapshots with install-time precaching and a
// cache-first, network-fallback retrieval policy.
package cache

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	url        TEXT PRIMARY KEY,
	status     INTEGER NOT NULL,
	headers    TEXT NOT NULL,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);`

// Cache is a single named cache of precached and runtime-fetched
// responses, keyed by request URL. Entries are never expired or evicted;
// the cache name is versioned externally to force invalidation on deploy.
type Cache struct {
	name   string
	db     *sql.DB
	client *http.Client
	origin *url.URL
	logger *slog.Logger

	// pending tracks detached runtime writes so Flush can drain them.
	pending sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithClient sets the HTTP client used for network fetches.
func WithClient(c *http.Client) Option {
	return func(rc *Cache) { rc.client = c }
}

// WithLogger sets the logger for cache population failures.
func WithLogger(l *slog.Logger) Option {
	return func(rc *Cache) { rc.logger = l }
}

// WithOrigin sets the page origin. Only responses to requests on this
// origin are eligible for runtime caching; with no origin configured
// every runtime response passes through uncached.
func WithOrigin(origin string) Option {
	return func(rc *Cache) {
		if u, err := url.Parse(origin); err == nil {
			rc.origin = u
		}
	}
}

// Open opens or creates the named cache under dir. The backing database
// file is named after the cache, so bumping the name starts a fresh cache.
func Open(dir, name string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, name+".db")
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	c := &Cache{
		name:   name,
		db:     db,
		client: http.DefaultClient,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the cache name.
func (c *Cache) Name() string { return c.name }

// Close drains pending writes and closes the backing store.
func (c *Cache) Close() error {
	c.pending.Wait()
	return c.db.Close()
}

// Flush blocks until all detached runtime writes have settled.
func (c *Cache) Flush() { c.pending.Wait() }

// Precache fetches and stores every URL in the manifest. Any single
// failure fails the whole installation and leaves the store untouched:
// a partially cached app shell is worse than none. All fetches complete
// before the first write, and the writes land in one transaction.
func (c *Cache) Precache(ctx context.Context, manifest []string) error {
	type entry struct {
		url    string
		status int
		header http.Header
		body   []byte
	}

	entries := make([]entry, 0, len(manifest))
	for _, raw := range manifest {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
		if err != nil {
			return fmt.Errorf("precache %s: %w", raw, err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("precache %s: %w", raw, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("precache %s: %w", raw, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("precache %s: unexpected status %d", raw, resp.StatusCode)
		}
		entries = append(entries, entry{raw, resp.StatusCode, resp.Header, body})
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("precache: %w", err)
	}
	defer tx.Rollback()
	for _, e := range entries {
		if err := putIn(tx, e.url, e.status, e.header, e.body); err != nil {
			return fmt.Errorf("precache %s: %w", e.url, err)
		}
	}
	return tx.Commit()
}

// Handle resolves a request with the cache-first policy: a cached
// snapshot wins unconditionally; on a miss the real fetch runs, and a
// same-origin GET 200 is stored opportunistically without delaying the
// response. Non-GET requests never touch the store in either direction.
// Network failures propagate to the caller unmodified.
func (c *Cache) Handle(req *http.Request) (*http.Response, error) {
	key := req.URL.String()
	isGet := req.Method == http.MethodGet || req.Method == ""

	if isGet {
		if resp, ok := c.get(key, req); ok {
			return resp, nil
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if !isGet || resp.StatusCode != http.StatusOK || !c.sameOrigin(req.URL) {
		return resp, nil
	}

	// Capture the body so the caller and the write share one read.
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	status := resp.StatusCode
	header := resp.Header.Clone()
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if err := c.put(key, status, header, body); err != nil {
			c.logger.Warn("cache write failed", "url", key, "error", err)
		}
	}()

	return resp, nil
}

// sameOrigin reports whether u shares scheme and host with the
// configured origin.
func (c *Cache) sameOrigin(u *url.URL) bool {
	if c.origin == nil {
		return false
	}
	return u.Scheme == c.origin.Scheme && u.Host == c.origin.Host
}

func (c *Cache) get(key string, req *http.Request) (*http.Response, bool) {
	var status int
	var headerJSON string
	var body []byte
	err := c.db.QueryRow(
		"SELECT status, headers, body FROM responses WHERE url = ?", key,
	).Scan(&status, &headerJSON, &body)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache lookup failed", "url", key, "error", err)
		return nil, false
	}

	header := make(http.Header)
	if err := json.Unmarshal([]byte(headerJSON), &header); err != nil {
		c.logger.Warn("cache entry has bad headers", "url", key, "error", err)
		return nil, false
	}

	return &http.Response{
		Status:        http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, true
}

func (c *Cache) put(key string, status int, header http.Header, body []byte) error {
	return putIn(c.db, key, status, header, body)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func putIn(db execer, key string, status int, header http.Header, body []byte) error {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO responses (url, status, headers, body, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   status = excluded.status,
		   headers = excluded.headers,
		   body = excluded.body,
		   fetched_at = excluded.fetched_at`,
		key, status, string(headerJSON), body, time.Now().UnixMilli(),
	)
	return err
}
