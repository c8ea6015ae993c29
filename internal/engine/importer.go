package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
	"github.com/tartampluch/go-scoutalert/internal/sheet"
)

// SourceConfig describes where the registry extract comes from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path of the .xlsx/.csv/.vcf file
	WebURL    string // Download URL; see sheet.Detect for how the reader is picked
	WebUser   string // HTTP Basic Auth username
	WebPass   string // HTTP Basic Auth password
}

// RecordSink is the write side of the birthday store.
type RecordSink interface {
	Save(records []registry.BirthdayRecord) error
}

// Importer runs the ingestion pipeline: source, reader, header detection,
// row normalisation, then an atomic replace of the stored records.
type Importer struct {
	Fetcher SourceFetcher
	Store   RecordSink
}

// Run imports the extract described by cfg and stores the result.
// The stored sequence is only replaced when every step succeeded.
func (im *Importer) Run(ctx context.Context, cfg SourceConfig) ([]registry.BirthdayRecord, error) {
	records, err := im.Parse(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if im.Store == nil {
		return nil, errors.New(config.ErrStoreWrite)
	}
	if err := im.Store.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Parse reads and normalises the extract without storing it.
func (im *Importer) Parse(ctx context.Context, cfg SourceConfig) ([]registry.BirthdayRecord, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	src, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrSourceRead, err)
	}
	// Read-only stream: a Close error is not actionable.
	defer func() { _ = src.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream := bufio.NewReader(src)
	head, err := stream.Peek(config.FormatSniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrSourceRead, err)
	}

	reader, err := sheet.Detect(src.Name, src.ContentType, head)
	if err != nil {
		return nil, err
	}

	table, err := reader.Read(stream)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	roles := registry.DetectHeaders(table.Headers)
	logRoles(ctx, log, table.Headers, roles)

	records, err := registry.NormalizeRows(table, roles)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, config.MsgImportDone,
		config.LogKeyRows, len(table.Rows),
		config.LogKeyRecords, len(records),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return records, nil
}

// acquireStream opens the configured source. Local files are named by their
// path; downloads fall back to the URL path when the server names nothing.
func (im *Importer) acquireStream(ctx context.Context, cfg SourceConfig) (*Download, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		f, err := os.Open(cfg.LocalPath)
		if err != nil {
			return nil, err
		}
		return &Download{ReadCloser: f, Name: cfg.LocalPath}, nil
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		dl, err := im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
		if err != nil {
			return nil, err
		}
		if dl.Name == "" {
			if u, err := url.Parse(cfg.WebURL); err == nil {
				dl.Name = u.Path
			}
		}
		return dl, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func logRoles(ctx context.Context, log *slog.Logger, headers []string, roles registry.HeaderRoleMap) {
	for _, role := range registry.Roles {
		idx, ok := roles.Index(role)
		if !ok {
			log.WarnContext(ctx, config.MsgRoleMissing, config.LogKeyRole, string(role))
			continue
		}
		log.DebugContext(ctx, config.MsgHeadersFound,
			config.LogKeyRole, string(role),
			config.LogKeyIndex, idx,
			config.LogKeyHeader, headers[idx])
	}
}
