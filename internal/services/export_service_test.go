package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/seed"
	"movie-catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStorage) Put(_ context.Context, objectName, contentType string, body io.Reader, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return errors.New("size mismatch")
	}
	m.objects[objectName] = data
	m.types[objectName] = contentType
	return nil
}

func (m *memoryStorage) PresignedGetURL(_ context.Context, objectName string) (string, time.Duration, error) {
	return "https://exports.example.test/" + objectName + "?sig=x", 15 * time.Minute, nil
}

func TestExportMovies_RoundTripsThroughLoader(t *testing.T) {
	ctx := context.Background()
	source := repository.NewStore(testutil.NewDB(t))
	_, err := seed.NewLoader(source, config.UnresolvedSkip, testutil.Logger()).Run(ctx, seed.DefaultData())
	require.NoError(t, err)

	var buf bytes.Buffer
	exporter := NewExportService(source, nil, testutil.Logger())
	count, err := exporter.ExportMovies(ctx, &buf)
	require.NoError(t, err)
	require.NotZero(t, count)

	original, err := source.Movies().ListAll(ctx)
	require.NoError(t, err)

	// Load the export into a fresh catalog that shares genres and actors.
	genres, err := source.Genres().FindAll(ctx)
	require.NoError(t, err)
	actors, err := source.Actors().FindAll(ctx)
	require.NoError(t, err)

	var genreList, actorList strings.Builder
	for _, g := range genres {
		genreList.WriteString(g.Name + "\n")
	}
	for _, a := range actors {
		actorList.WriteString(a.Name + "," + a.BirthDate.String() + "\n")
	}

	target := repository.NewStore(testutil.NewDB(t))
	report, err := seed.NewLoader(target, config.UnresolvedFail, testutil.Logger()).Run(ctx, testutil.CSVFiles(genreList.String(), actorList.String(), buf.String()))
	require.NoError(t, err)
	assert.Equal(t, count, report.Movies)

	reloaded, err := target.Movies().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, len(original))
	for i := range original {
		assert.Equal(t, original[i].Title, reloaded[i].Title)
		assert.Equal(t, original[i].ReleaseYear, reloaded[i].ReleaseYear)
		assert.Equal(t, len(original[i].Genres), len(reloaded[i].Genres))
		assert.Equal(t, len(original[i].Actors), len(reloaded[i].Actors))
	}
}

func TestArchiveMovies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.movie(t, "Heat", 1995, nil, nil)

	_, err := NewExportService(f.store, nil, testutil.Logger()).ArchiveMovies(ctx)
	assert.ErrorIs(t, err, ErrArchiveDisabled)

	storage := newMemoryStorage()
	svc := NewExportService(f.store, storage, testutil.Logger()).(*exportService)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC) }

	archive, err := svc.ArchiveMovies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, archive.Movies)
	assert.True(t, strings.HasPrefix(archive.Object, "movies_2024-01-02T15-04-05Z_"))
	assert.Contains(t, archive.URL, archive.Object)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 19, 5, 0, time.UTC), archive.ExpiresAt)

	assert.Equal(t, "Heat,1995,120,,\n", string(storage.objects[archive.Object]))
	assert.Equal(t, "text/csv", storage.types[archive.Object])
}
