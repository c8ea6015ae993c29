package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

func serve(t *testing.T, h http.Handler, method, route string, header http.Header) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, route, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	resp := w.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// -----------------------------------------------------------------------------
// Handler Tests
// -----------------------------------------------------------------------------

func TestHandler_ServingContent(t *testing.T) {
	srv := NewFeedServer("0")
	ics := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")
	vcf := []byte("BEGIN:VCARD\r\nVERSION:4.0\r\nEND:VCARD")
	srv.UpdateCalendar(ics)
	srv.UpdateContacts(vcf)

	tests := []struct {
		route string
		mime  string
		body  []byte
	}{
		{config.RouteCalendar, config.MimeTextCalendar, ics},
		{config.RouteContacts, config.MimeTextVCard, vcf},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			resp := serve(t, srv.Handler(), http.MethodGet, tt.route, nil)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.mime, resp.Header.Get(config.HeaderContentType))
			assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
			assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
			assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
			assert.NotEmpty(t, resp.Header.Get(config.HeaderLastModified))

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestHandler_Today(t *testing.T) {
	srv := NewFeedServer("0")
	rec := registry.BirthdayRecord{GivenName: "Marco", Surname: "Bianchi", Unit: "Scouts", Day: 17, Month: 10, Year: 2012}
	today := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.Local)
	summary := engine.Match([]registry.BirthdayRecord{rec}, today, nil, nil)
	require.NoError(t, srv.UpdateToday(summary))

	resp := serve(t, srv.Handler(), http.MethodGet, config.RouteToday, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))

	var got struct {
		Count       int      `json:"count"`
		Title       string   `json:"title"`
		DetailLines []string `json:"detail_lines"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, summary.Title, got.Title)
	assert.Equal(t, []string{"Marco Bianchi (Scouts)"}, got.DetailLines)
}

func TestHandler_Caching(t *testing.T) {
	srv := NewFeedServer("0")
	srv.UpdateCalendar([]byte("DATA_VERSION_1"))
	h := srv.Handler()

	first := serve(t, h, http.MethodGet, config.RouteCalendar, nil)
	etag := first.Header.Get(config.HeaderETag)
	lastMod := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"Matching ETag", http.Header{config.HeaderIfNoneMatch: {etag}}, http.StatusNotModified},
		{"Stale ETag", http.Header{config.HeaderIfNoneMatch: {`"stale"`}}, http.StatusOK},
		{"Not modified since", http.Header{config.HeaderIfModifiedSince: {lastMod}}, http.StatusNotModified},
		{"Modified since", http.Header{config.HeaderIfModifiedSince: {time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)}}, http.StatusOK},
		{"Bad date", http.Header{config.HeaderIfModifiedSince: {"yesterday"}}, http.StatusOK},
		{"ETag wins over date", http.Header{
			config.HeaderIfNoneMatch:     {`"stale"`},
			config.HeaderIfModifiedSince: {lastMod},
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(t, h, http.MethodGet, config.RouteCalendar, tt.header)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusNotModified {
				body, _ := io.ReadAll(resp.Body)
				assert.Empty(t, body, "Body must be empty on 304 Not Modified")
			}
		})
	}
}

func TestHandler_Head(t *testing.T) {
	srv := NewFeedServer("0")
	srv.UpdateContacts([]byte("BEGIN:VCARD\r\nEND:VCARD"))

	resp := serve(t, srv.Handler(), http.MethodHead, config.RouteContacts, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewFeedServer("0")
	srv.UpdateCalendar([]byte("x"))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			resp := serve(t, srv.Handler(), method, config.RouteCalendar, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
		})
	}
}

func TestHandler_Initializing(t *testing.T) {
	srv := NewFeedServer("0")
	// Only the calendar is ready; the other feeds must still report 503.
	srv.UpdateCalendar([]byte("x"))

	for _, route := range []string{config.RouteContacts, config.RouteToday} {
		t.Run(route, func(t *testing.T) {
			resp := serve(t, srv.Handler(), http.MethodGet, route, nil)
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
			assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
		})
	}
}

func TestHandler_UnknownRoute(t *testing.T) {
	srv := NewFeedServer("0")
	resp := serve(t, srv.Handler(), http.MethodGet, "/secret", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// -----------------------------------------------------------------------------
// Concurrency Tests
// -----------------------------------------------------------------------------

// TestServer_RaceCondition runs writers and readers concurrently.
// Run with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewFeedServer("0")
	h := srv.Handler()
	var wg sync.WaitGroup

	end := time.Now().Add(500 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				srv.UpdateCalendar([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				i++
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests
// -----------------------------------------------------------------------------

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := NewFeedServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteCalendar

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.UpdateCalendar([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_PortRequired(t *testing.T) {
	srv := NewFeedServer("")
	err := srv.Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}

func TestServer_PortBusy(t *testing.T) {
	busy := httptest.NewServer(http.NotFoundHandler())
	defer busy.Close()
	_, port, err := net.SplitHostPort(busy.Listener.Addr().String())
	require.NoError(t, err)

	srv := NewFeedServer(port)
	err = srv.Start(context.Background())
	assert.ErrorContains(t, err, config.ErrServerStartup)
}
