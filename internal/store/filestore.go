// Package store persists the canonical birthday records and the unit
// subscriptions in a single JSON document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

// ErrIndexOutOfRange is returned by Replace and Remove.
var ErrIndexOutOfRange = errors.New(config.ErrIndexRange)

// Store is the persistence contract of the application. Writes replace the
// whole sequence (last writer wins); reads return a consistent snapshot.
type Store interface {
	Load() ([]registry.BirthdayRecord, error)
	Save(records []registry.BirthdayRecord) error
	LoadUnitSubscriptions() ([]string, error)
	SaveUnitSubscriptions(units []string) error
}

type document struct {
	Birthdays []registry.BirthdayRecord `json:"birthdays"`
	Units     []string                  `json:"units_with_notifications"`
}

// FileStore keeps the document in one file. Access is serialised with a
// mutex within the process and an advisory lock file across processes (the
// tray app and a headless -import may run at the same time). The file is
// replaced atomically, so readers never observe a partial write.
type FileStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

var _ Store = (*FileStore)(nil)

// New returns a store backed by path. Nothing is created until the first write.
func New(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + config.LockFileSuffix),
	}
}

// DefaultPath returns the store location in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigDir, err)
	}
	return filepath.Join(dir, config.AppID, config.StoreFileName), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored records. Records that fail validation are skipped
// so they can never be matched. A missing file yields no records.
func (s *FileStore) Load() ([]registry.BirthdayRecord, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return validRecords(doc.Birthdays), nil
}

// validRecords drops the records that fail validation. Indices handed out
// by Load refer to the filtered sequence.
func validRecords(in []registry.BirthdayRecord) []registry.BirthdayRecord {
	records := make([]registry.BirthdayRecord, 0, len(in))
	for i, r := range in {
		if err := registry.Validate(r); err != nil {
			slog.Warn(config.MsgSkippedRecord,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyIndex, i,
				config.LogKeyError, err)
			continue
		}
		records = append(records, r)
	}
	return records
}

// LoadUnitSubscriptions returns the units the user wants notifications for.
// An empty result means every unit.
func (s *FileStore) LoadUnitSubscriptions() ([]string, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return cleanUnits(doc.Units), nil
}

// Save replaces the stored records.
func (s *FileStore) Save(records []registry.BirthdayRecord) error {
	err := s.update(func(doc *document) error {
		doc.Birthdays = slices.Clone(records)
		return nil
	})
	if err == nil {
		slog.Info(config.MsgStoreSaved,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyRecords, len(records))
	}
	return err
}

// SaveUnitSubscriptions replaces the unit subscriptions. Blank and
// duplicate entries are dropped.
func (s *FileStore) SaveUnitSubscriptions(units []string) error {
	cleaned := cleanUnits(units)
	err := s.update(func(doc *document) error {
		doc.Units = cleaned
		return nil
	})
	if err == nil {
		slog.Info(config.MsgUnitsSaved,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyUnits, cleaned)
	}
	return err
}

// Append validates r and adds it at the end of the sequence.
func (s *FileStore) Append(r registry.BirthdayRecord) error {
	if err := registry.Validate(r); err != nil {
		return err
	}
	return s.update(func(doc *document) error {
		doc.Birthdays = append(doc.Birthdays, r)
		return nil
	})
}

// Replace validates r and stores it at index, as returned by Load. Invalid
// stored records are dropped by the rewrite.
func (s *FileStore) Replace(index int, r registry.BirthdayRecord) error {
	if err := registry.Validate(r); err != nil {
		return err
	}
	return s.update(func(doc *document) error {
		doc.Birthdays = validRecords(doc.Birthdays)
		if index < 0 || index >= len(doc.Birthdays) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		doc.Birthdays[index] = r
		return nil
	})
}

// Remove deletes the record at index, as returned by Load.
func (s *FileStore) Remove(index int) error {
	return s.update(func(doc *document) error {
		doc.Birthdays = validRecords(doc.Birthdays)
		if index < 0 || index >= len(doc.Birthdays) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		doc.Birthdays = slices.Delete(doc.Birthdays, index, index+1)
		return nil
	})
}

func (s *FileStore) snapshot() (document, error) {
	// The flock handle tracks a single lock state, so readers serialise on
	// mu as well.
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}

	if err := s.lock.RLock(); err != nil {
		return document{}, fmt.Errorf("%s: %w", config.ErrStoreLock, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	return s.read()
}

// update applies fn to the current document and writes the result.
func (s *FileStore) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreLock, err)
	}
	defer func() { _ = s.lock.Unlock() }()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *FileStore) read() (document, error) {
	var doc document
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	return doc, nil
}

// write replaces the file through a temp file in the same directory.
func (s *FileStore) write(doc document) error {
	if doc.Birthdays == nil {
		doc.Birthdays = []registry.BirthdayRecord{}
	}
	if doc.Units == nil {
		doc.Units = []string{}
	}

	slog.Debug(config.MsgSaving,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, s.path)

	data, err := json.MarshalIndent(doc, "", config.JSONIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	tmpPath := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Chmod(tmpPath, config.FilePermUserRW); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	return nil
}

func cleanUnits(units []string) []string {
	out := make([]string, 0, len(units))
	for _, u := range units {
		u = strings.TrimSpace(u)
		if u != "" && !slices.Contains(out, u) {
			out = append(out, u)
		}
	}
	return out
}
