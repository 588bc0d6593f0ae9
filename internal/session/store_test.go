package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{Date: "01/01/2024", Content: "Fractions", Strengths: "Quick", Improvements: "Neatness", Rating: RatingGood},
		{Date: "15/01/2024", Content: "Decimals", Strengths: "Careful", Improvements: "Speed", Rating: RatingExcellent},
		{Date: "10/01/2024", Content: "Reading comprehension", Strengths: "", Improvements: "Vocabulary", Rating: RatingFair},
	}
}

func newLoadedStore(t *testing.T, records []Record) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "data.csv"))
	require.NoError(t, store.Replace(records))
	return store
}

func TestOpen(t *testing.T) {
	t.Run("missing file is an empty table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, []Record{}, store.Records())
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), "loading must not create the file")
	})

	t.Run("malformed file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("Content,Rating\nFractions,Good\n"), 0644))
		_, err := Open(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedStorage))
	})

	t.Run("backfills feedback columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("Date,Content,Rating\n01/01/2024,Fractions,Good\n"), 0644))
		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, []Record{{Date: "01/01/2024", Content: "Fractions", Rating: RatingGood}}, store.Records())
	})
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newLoadedStore(t, sampleRecords())

	reloaded, err := Open(store.Path())
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), reloaded.Records())
}

func TestStore_Add(t *testing.T) {
	store := newLoadedStore(t, sampleRecords())
	added := Record{Date: "20/01/2024", Content: "Long division", Rating: RatingNeedsEffort}

	require.NoError(t, store.Add(added))

	assert.Equal(t, 4, store.Len())
	got, err := store.At(3)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	reloaded, err := Open(store.Path())
	require.NoError(t, err)
	assert.Equal(t, store.Records(), reloaded.Records())

	view := Filter(reloaded.Records(), "DIVISION", AllRatings())
	require.Len(t, view, 1)
	assert.Equal(t, 3, view[0].Index)
}

func TestStore_UpdateAt(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{name: "first", index: 0},
		{name: "middle", index: 1},
		{name: "last", index: 2},
		{name: "negative", index: -1, wantErr: true},
		{name: "past the end", index: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newLoadedStore(t, sampleRecords())
			updated := Record{Date: "02/02/2024", Content: "Updated", Strengths: "s", Improvements: "i", Rating: RatingFair}

			err := store.UpdateAt(tt.index, updated)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrIndexOutOfRange))
				assert.Equal(t, sampleRecords(), store.Records())
				return
			}
			require.NoError(t, err)

			want := sampleRecords()
			want[tt.index] = updated
			assert.Equal(t, want, store.Records())

			reloaded, err := Open(store.Path())
			require.NoError(t, err)
			assert.Equal(t, want, reloaded.Records())
		})
	}
}

func TestStore_DeleteAt(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{name: "first", index: 0},
		{name: "middle", index: 1},
		{name: "last", index: 2},
		{name: "past the end", index: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newLoadedStore(t, sampleRecords())

			err := store.DeleteAt(tt.index)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrIndexOutOfRange))
				assert.Equal(t, 3, store.Len())
				return
			}
			require.NoError(t, err)

			original := sampleRecords()
			got := store.Records()
			require.Len(t, got, len(original)-1)
			assert.Equal(t, original[:tt.index], got[:tt.index])
			assert.Equal(t, original[tt.index+1:], got[tt.index:])

			reloaded, err := Open(store.Path())
			require.NoError(t, err)
			assert.Equal(t, got, reloaded.Records())
		})
	}
}

func TestStore_Records_ReturnsCopy(t *testing.T) {
	store := newLoadedStore(t, sampleRecords())
	records := store.Records()
	records[0].Content = "changed"

	got, err := store.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Fractions", got.Content)
}

func TestStore_WriteFailureKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the data file makes every save fail.
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.Mkdir(path, 0755))

	store := NewStore(path)
	err := store.Add(Record{Date: "01/01/2024", Content: "Fractions", Rating: RatingGood})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session records")
	assert.Equal(t, 1, store.Len())
}
