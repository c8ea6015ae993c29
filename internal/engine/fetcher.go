package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/sheet"
)

// SourceFetcher retrieves a remote registry extract (spreadsheet, CSV or
// vCard export). Implementations must honour ctx cancellation.
type SourceFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (*Download, error)
}

// Download is an open registry extract plus what the server said about it.
// Share and export links rarely end in a file extension, so Name and
// ContentType are what let the importer pick a reader.
type Download struct {
	io.ReadCloser

	// Name is the Content-Disposition filename, or the URL path.
	Name string

	// ContentType is the media type without parameters, lower-cased.
	ContentType string
}

// HTTPFetcher implements SourceFetcher over net/http.
type HTTPFetcher struct {
	Client *http.Client

	// MaxBytes caps the body size; zero means config.MaxHTTPResponseSize.
	// Reading past it fails with sheet.ErrTooLarge.
	MaxBytes int64
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch starts downloading a registry extract. Query parameters are
// stripped from logged URLs since shared links often carry access tokens.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (*Download, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.DebugContext(ctx, config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.WarnContext(ctx, config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrHTTPStatus, resp.Status)
	}

	dl := &Download{
		ReadCloser: bodyReader{
			Reader: sheet.LimitReader(resp.Body, f.maxBytes()),
			Closer: resp.Body,
		},
		Name:        dispositionName(resp.Header.Get(config.HeaderDisposition), u.Path),
		ContentType: mediaType(resp.Header.Get(config.HeaderContentType)),
	}
	log.InfoContext(ctx, config.MsgFetchOK,
		slog.Int64(config.LogKeySizeBytes, resp.ContentLength),
		slog.String(config.LogKeyName, dl.Name),
		slog.String(config.LogKeyMediaType, dl.ContentType),
	)
	return dl, nil
}

func (f *HTTPFetcher) maxBytes() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return config.MaxHTTPResponseSize
}

// dispositionName returns the base name of the Content-Disposition filename
// (RFC 2231 encoded names included), or fallback when there is none.
func dispositionName(header, fallback string) string {
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := params[config.DispositionFilename]; name != "" {
			return path.Base(name)
		}
	}
	return fallback
}

func mediaType(header string) string {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return mt
}

// bodyReader reads through the size limit but closes the response body.
type bodyReader struct {
	io.Reader
	io.Closer
}
