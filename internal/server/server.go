// Package server publishes the generated feeds over HTTP on the loopback
// interface.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
)

// cacheItem stores one rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// feed is a single published document.
type feed struct {
	route string
	mime  string
	// Feeds are read by every client poll but only replaced after a check,
	// so reads go through an atomic pointer instead of a lock.
	cache atomic.Pointer[cacheItem]
}

// FeedServer serves the calendar, the address book and today's summary.
type FeedServer struct {
	Port string

	calendar feed
	contacts feed
	today    feed
}

// NewFeedServer creates a server for port. Nothing is served until the first
// update of each feed.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port:     port,
		calendar: feed{route: config.RouteCalendar, mime: config.MimeTextCalendar},
		contacts: feed{route: config.RouteContacts, mime: config.MimeTextVCard},
		today:    feed{route: config.RouteToday, mime: config.MimeJSON},
	}
}

// Handler returns the routing table. It is exposed for tests and embedding.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, f := range []*feed{&s.calendar, &s.contacts, &s.today} {
		mux.HandleFunc(f.route, f.serve)
	}
	return mux
}

// Start binds to the loopback interface and blocks until ctx is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateCalendar replaces the served iCalendar document.
func (s *FeedServer) UpdateCalendar(data []byte) {
	s.calendar.update(data)
}

// UpdateContacts replaces the served vCard stream.
func (s *FeedServer) UpdateContacts(data []byte) {
	s.contacts.update(data)
}

// UpdateToday replaces the served summary of today's check.
func (s *FeedServer) UpdateToday(summary engine.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSummaryEncode, err)
	}
	s.today.update(data)
	return nil
}

// update atomically replaces the feed content. Concurrent readers see either
// the old or the new item, never a partial one.
func (f *feed) update(data []byte) {
	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	f.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, f.route,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}

// serve writes the feed with conditional request support.
func (f *feed) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := f.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, f.mime)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyRoute, f.route,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified evaluates If-None-Match first, then If-Modified-Since.
func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}
