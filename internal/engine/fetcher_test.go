package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/engine"
	"github.com/tartampluch/go-scoutalert/internal/sheet"
)

// TestHTTPFetcher_Fetch_Success checks the User-Agent and Basic Auth headers
// and the integrity of the downloaded extract.
func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	// 1. Setup Validation Data
	expectedUser := "testuser"
	expectedPass := "securepass"
	expectedBody := "Cognome;Nome;Data di nascita;Unità\nRossi;Mario;15/03/2010;E/G\n"

	// 2. Mock Server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify Basic Auth
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, expectedUser, user, "Username mismatch")
		assert.Equal(t, expectedPass, pass, "Password mismatch")

		// Verify User-Agent matches the config constant
		assert.Equal(t, config.UserAgent, r.Header.Get("User-Agent"), "User-Agent mismatch")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(expectedBody))
	}))
	defer ts.Close()

	// 3. Execution
	fetcher := engine.NewHTTPFetcher()
	rc, err := fetcher.Fetch(context.Background(), ts.URL, expectedUser, expectedPass)

	// 4. Assertions
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, expectedBody, string(body))
}

// TestHTTPFetcher_Fetch_Errors verifies proper error handling for non-200 statuses.
func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			fetcher := engine.NewHTTPFetcher()
			rc, err := fetcher.Fetch(context.Background(), ts.URL, "", "")

			assert.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestHTTPFetcher_Fetch_Timeout ensures the client respects context deadlines.
func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	// Simulate a server that hangs
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	fetcher := engine.NewHTTPFetcher()

	// Create a context that expires very quickly (before server responds)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := fetcher.Fetch(ctx, ts.URL, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "Should return context deadline exceeded error")
}

// TestHTTPFetcher_Fetch_InvalidURL ensures malformed URLs are caught early.
func TestHTTPFetcher_Fetch_InvalidURL(t *testing.T) {
	fetcher := engine.NewHTTPFetcher()

	// Testing with a control character that makes URL parsing fail
	_, err := fetcher.Fetch(context.Background(), string([]byte{0x7f}), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)
}

// TestHTTPFetcher_Fetch_ProtocolSecurity enforces HTTP/HTTPS only.
func TestHTTPFetcher_Fetch_ProtocolSecurity(t *testing.T) {
	fetcher := engine.NewHTTPFetcher()

	_, err := fetcher.Fetch(context.Background(), "ftp://example.com/registro.xlsx", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)
}

// TestHTTPFetcher_Fetch_KeepsQueryOnRequest ensures tokenised share links
// are requested with their query string intact.
func TestHTTPFetcher_Fetch_KeepsQueryOnRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/registro.csv?token=secret", "", "")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

// TestHTTPFetcher_Fetch_Metadata checks that export links without an
// extension still report a usable name and media type.
func TestHTTPFetcher_Fetch_Metadata(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		contentType string
		wantName    string
		wantType    string
	}{
		{"Disposition filename", `attachment; filename="Registro 2025.xlsx"`, "application/octet-stream", "Registro 2025.xlsx", "application/octet-stream"},
		{"Encoded filename", `attachment; filename*=UTF-8''Unit%C3%A0.csv`, "text/csv; charset=utf-8", "Unità.csv", "text/csv"},
		{"No disposition", "", "Text/CSV", "/spreadsheets/d/abc/export", "text/csv"},
		{"Nothing", "", "", "/spreadsheets/d/abc/export", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				_, _ = w.Write([]byte("Cognome;Nome\n"))
			}))
			defer ts.Close()

			dl, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/spreadsheets/d/abc/export?format=csv", "", "")
			require.NoError(t, err)
			defer func() { _ = dl.Close() }()

			assert.Equal(t, tt.wantName, dl.Name)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, dl.ContentType)
			}
		})
	}
}

// TestHTTPFetcher_Fetch_TooLarge ensures an oversized body fails instead of
// being cut short.
func TestHTTPFetcher_Fetch_TooLarge(t *testing.T) {
	body := strings.Repeat("Rossi;Mario;15/03/2010;E/G\n", 100)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	fetcher := &engine.HTTPFetcher{Client: ts.Client(), MaxBytes: 1024}
	dl, err := fetcher.Fetch(context.Background(), ts.URL+"/registro.csv", "", "")
	require.NoError(t, err)
	defer func() { _ = dl.Close() }()

	got, err := io.ReadAll(dl)
	assert.ErrorIs(t, err, sheet.ErrTooLarge)
	assert.Len(t, got, 1024)

	fetcher.MaxBytes = int64(len(body))
	dl, err = fetcher.Fetch(context.Background(), ts.URL+"/registro.csv", "", "")
	require.NoError(t, err)
	defer func() { _ = dl.Close() }()

	got, err = io.ReadAll(dl)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}
