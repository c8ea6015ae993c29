package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-scoutalert/internal/config"
	"github.com/tartampluch/go-scoutalert/internal/registry"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "nested", config.StoreFileName))
}

var (
	mario = registry.BirthdayRecord{GivenName: "Mario", Surname: "Rossi", Unit: "E/G", Day: 15, Month: 3, Year: 2010}
	anna  = registry.BirthdayRecord{GivenName: "Anna", Surname: "Bianchi", Day: 29, Month: 2}
	luca  = registry.BirthdayRecord{GivenName: "Luca", Surname: "Verdi", Unit: "L/C"}
)

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	s := newStore(t)

	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)

	units, err := s.LoadUnitSubscriptions()
	require.NoError(t, err)
	assert.Empty(t, units)

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "reads never create the file")
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save([]registry.BirthdayRecord{mario, anna, luca}))

	records, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []registry.BirthdayRecord{mario, anna, luca}, records)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())

	// A second store on the same file sees the same snapshot.
	other, err := New(s.Path()).Load()
	require.NoError(t, err)
	assert.Equal(t, records, other)
}

func TestFileStore_DocumentLayout(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save([]registry.BirthdayRecord{mario, anna}))
	require.NoError(t, s.SaveUnitSubscriptions([]string{"E/G"}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw struct {
		Birthdays []map[string]any `json:"birthdays"`
		Units     []string         `json:"units_with_notifications"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Len(t, raw.Birthdays, 2)
	assert.Equal(t, map[string]any{
		"given_name": "Mario", "surname": "Rossi", "unit": "E/G",
		"day": float64(15), "month": float64(3), "year": float64(2010),
	}, raw.Birthdays[0])
	assert.NotContains(t, raw.Birthdays[1], "unit", "absent unit is omitted")
	assert.NotContains(t, raw.Birthdays[1], "year", "absent year is omitted")
	assert.Equal(t, []string{"E/G"}, raw.Units)
}

func TestFileStore_SaveReplacesWholeSequence(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save([]registry.BirthdayRecord{mario, anna}))
	require.NoError(t, s.SaveUnitSubscriptions([]string{"L/C"}))

	require.NoError(t, s.Save([]registry.BirthdayRecord{luca}))

	records, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []registry.BirthdayRecord{luca}, records)

	units, err := s.LoadUnitSubscriptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"L/C"}, units, "subscriptions survive an import")
}

func TestFileStore_UnitSubscriptionsAreCleaned(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveUnitSubscriptions([]string{" E/G ", "", "L/C", "E/G"}))

	units, err := s.LoadUnitSubscriptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"E/G", "L/C"}, units)

	require.NoError(t, s.SaveUnitSubscriptions(nil))
	units, err = s.LoadUnitSubscriptions()
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestFileStore_EditorOperations(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(mario))
	require.NoError(t, s.Append(anna))

	edited := anna
	edited.Unit = "R/S"
	require.NoError(t, s.Replace(1, edited))
	require.NoError(t, s.Remove(0))

	records, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []registry.BirthdayRecord{edited}, records)

	assert.ErrorIs(t, s.Replace(5, mario), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Remove(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Append(registry.BirthdayRecord{Day: 31, Month: 4}), registry.ErrInvalidRecord)
	assert.ErrorIs(t, s.Replace(0, registry.BirthdayRecord{Day: 1, Month: 13}), registry.ErrInvalidRecord)
}

func TestFileStore_SkipsInvalidStoredRecords(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), config.DirPermUserRWX))
	content := `{"birthdays":[
		{"given_name":"Mario","surname":"Rossi","day":15,"month":3},
		{"given_name":"Bad","surname":"Month","day":15,"month":13},
		{"given_name":"Bad","surname":"Day","day":31,"month":4}
	]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), config.FilePermUserRW))

	records, err := s.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Rossi", records[0].Surname)
}

func TestFileStore_EditIndicesFollowLoad(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), config.DirPermUserRWX))
	content := `{"birthdays":[
		{"given_name":"Bad","surname":"Month","day":15,"month":13},
		{"given_name":"Mario","surname":"Rossi","day":15,"month":3},
		{"given_name":"Anna","surname":"Bianchi","day":29,"month":2}
	]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), config.FilePermUserRW))

	// Index 1 is Anna in the loaded sequence
	require.NoError(t, s.Remove(1))

	records, err := s.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Rossi", records[0].Surname)

	require.NoError(t, s.Replace(0, luca))
	records, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, []registry.BirthdayRecord{luca}, records)
}

func TestFileStore_CorruptedDocument(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), config.DirPermUserRWX))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), config.FilePermUserRW))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrStoreDecode)

	err = s.Save([]registry.BirthdayRecord{mario})
	require.Error(t, err, "a corrupted document is never silently overwritten")
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	s := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Append(mario))
			_, err := s.Load()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, records, 20, "no append is lost")

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotRegexp(t, `^\.tmp-`, e.Name(), "temp files are cleaned up")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skip("no user config dir in this environment")
	}
	assert.Equal(t, config.StoreFileName, filepath.Base(path))
	assert.Equal(t, config.AppID, filepath.Base(filepath.Dir(path)))
}
