// ABOUTME: Tests for archive export and import.
// ABOUTME: Round-trips a populated store through YAML and JSON into a fresh one.

package main

import (
	"context"
	"testing"

	"github.com/harper/folio/internal/models"
	"github.com/harper/folio/internal/repository/memory"
	"github.com/harper/folio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) (*store.Store, []*models.Note) {
	t.Helper()
	ctx := context.Background()
	st := store.New(memory.NewRepository())
	for _, name := range []string{"Trips", "Home", "Empty"} {
		require.NoError(t, st.AddCategory(ctx, name))
	}

	trip := models.NewNote("Trips", "Niagara", "Falls were loud")
	trip.Image = models.NewImage([]byte("\x89PNG\r\n\x1a\nfake"))
	trip.AudioRef = "falls.m4a"
	trip.Location = &models.Location{Latitude: 43.0896, Longitude: -79.0849}
	chores := models.NewNote("Home", "Chores", "")
	for _, n := range []*models.Note{trip, chores} {
		require.NoError(t, st.AddNote(ctx, n))
	}
	return st, []*models.Note{trip, chores}
}

func TestArchiveRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			ctx := context.Background()
			src, notes := populated(t)

			archive, err := buildArchive(ctx, src)
			require.NoError(t, err)
			assert.Len(t, archive.Categories, 3)

			data, err := encodeArchive(archive, format)
			require.NoError(t, err)
			decoded, err := decodeArchive(data, format)
			require.NoError(t, err)

			dst := store.New(memory.NewRepository())
			stats, err := applyArchive(ctx, dst, decoded)
			require.NoError(t, err)
			assert.Equal(t, importStats{Categories: 3, Notes: 2}, stats)

			for _, want := range notes {
				got, err := dst.FindNote(ctx, want.ID)
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "want %+v, got %+v", want, got)
			}
			assert.Equal(t, src.Categories(), dst.Categories())
		})
	}
}

func TestApplyArchiveSkipsExistingNotes(t *testing.T) {
	ctx := context.Background()
	st, _ := populated(t)
	archive, err := buildArchive(ctx, st)
	require.NoError(t, err)

	stats, err := applyArchive(ctx, st, archive)
	require.NoError(t, err)
	assert.Equal(t, importStats{Skipped: 2}, stats)
}

func TestDecodeArchiveUnknownFormat(t *testing.T) {
	_, err := decodeArchive([]byte("{}"), "toml")
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "json", formatFor("backup.JSON", "yaml"))
	assert.Equal(t, "yaml", formatFor("backup.yml", "json"))
	assert.Equal(t, "yaml", formatFor("-", "yaml"))
}
