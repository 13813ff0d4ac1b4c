package seed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, policy string) (*Loader, repository.Store) {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	return NewLoader(store, policy, testutil.Logger()), store
}

func counts(t *testing.T, store repository.Store) (genres, actors, movies int64) {
	t.Helper()
	ctx := context.Background()
	var err error
	genres, err = store.Genres().Count(ctx)
	require.NoError(t, err)
	actors, err = store.Actors().Count(ctx)
	require.NoError(t, err)
	movies, err = store.Movies().Count(ctx)
	require.NoError(t, err)
	return genres, actors, movies
}

func TestResolver(t *testing.T) {
	r := NewResolver()

	_, ok := r.Resolve("Action")
	assert.False(t, ok)

	r.Register("Action", 1)
	r.Register("Drama", 2)
	r.Register("Action", 7)

	id, ok := r.Resolve("Action")
	require.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, 2, r.Len())
}

func TestLoader_ResolvesCrossReferences(t *testing.T) {
	loader, store := newLoader(t, config.UnresolvedSkip)
	ctx := context.Background()

	data := testutil.CSVFiles(
		"Action\n  Sci-Fi  \n\nDrama\n",
		"Leonardo DiCaprio,1974-11-11\n Tom Hardy , 1977-09-15\n",
		"Inception,2010,148,Action|Sci-Fi,Leonardo DiCaprio\n",
	)

	report, err := loader.Run(ctx, data)
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 3, report.Genres)
	assert.Equal(t, 2, report.Actors)
	assert.Equal(t, 1, report.Movies)
	assert.Empty(t, report.Unresolved)

	movies, err := store.Movies().SearchByTitle(ctx, "inception")
	require.NoError(t, err)
	require.Len(t, movies, 1)

	movie := movies[0]
	assert.Equal(t, 2010, movie.ReleaseYear)
	assert.Equal(t, 148, movie.Duration)
	require.Len(t, movie.Genres, 2)
	assert.Equal(t, "Action", movie.Genres[0].Name)
	assert.Equal(t, "Sci-Fi", movie.Genres[1].Name)
	require.Len(t, movie.Actors, 1)
	assert.Equal(t, "Leonardo DiCaprio", movie.Actors[0].Name)
	require.NotNil(t, movie.Actors[0].BirthDate)
	assert.Equal(t, "1974-11-11", movie.Actors[0].BirthDate.String())

	hardy, err := store.Actors().SearchByName(ctx, "tom hardy")
	require.NoError(t, err)
	require.Len(t, hardy, 1)
	assert.Equal(t, "Tom Hardy", hardy[0].Name)
}

func TestLoader_SkipsUnresolvedNames(t *testing.T) {
	loader, store := newLoader(t, config.UnresolvedSkip)
	ctx := context.Background()

	data := testutil.CSVFiles(
		"Action\n",
		"Keanu Reeves,1964-09-02\n",
		"The Matrix,1999,136,Action|Cyberpunk|Action,Keanu Reeves|Nobody\n",
	)

	report, err := loader.Run(ctx, data)
	require.NoError(t, err)
	require.Len(t, report.Unresolved, 2)
	assert.Equal(t, UnresolvedRef{Line: 1, Movie: "The Matrix", Kind: "genre", Name: "Cyberpunk"}, report.Unresolved[0])
	assert.Equal(t, "Nobody", report.Unresolved[1].Name)

	movies, err := store.Movies().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Len(t, movies[0].Genres, 1)
	assert.Equal(t, "Action", movies[0].Genres[0].Name)
	require.Len(t, movies[0].Actors, 1)
}

func TestLoader_FailPolicyRejectsUnresolvedNames(t *testing.T) {
	loader, store := newLoader(t, config.UnresolvedFail)

	data := testutil.CSVFiles(
		"Action\n",
		"Keanu Reeves,1964-09-02\n",
		"The Matrix,1999,136,Action|Cyberpunk,Keanu Reeves\n",
	)

	_, err := loader.Run(context.Background(), data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Contains(t, err.Error(), `unknown genre "Cyberpunk"`)

	genres, actors, movies := counts(t, store)
	assert.Zero(t, genres)
	assert.Zero(t, actors)
	assert.Zero(t, movies)
}

func TestLoader_MalformedInputAbortsWholeRun(t *testing.T) {
	tests := []struct {
		name    string
		actors  string
		movies  string
		wantErr string
	}{
		{
			name:    "invalid calendar date",
			actors:  "Leonardo DiCaprio,1974-11-11\nTom Hardy,1977-02-30\n",
			movies:  "Inception,2010,148,Action,Leonardo DiCaprio\n",
			wantErr: "line 2: invalid birth date",
		},
		{
			name:    "non-numeric year",
			actors:  "Leonardo DiCaprio,1974-11-11\n",
			movies:  "Inception,2010,148,Action,Leonardo DiCaprio\nTenet,twenty,150,Action,\n",
			wantErr: `invalid release year "twenty"`,
		},
		{
			name:    "non-numeric duration",
			actors:  "Leonardo DiCaprio,1974-11-11\n",
			movies:  "Inception,2010,2h28m,Action,Leonardo DiCaprio\n",
			wantErr: "invalid duration",
		},
		{
			name:    "missing fields",
			actors:  "Leonardo DiCaprio,1974-11-11\n",
			movies:  "Inception,2010,148\n",
			wantErr: "expected 5 fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, store := newLoader(t, config.UnresolvedSkip)

			_, err := loader.Run(context.Background(), testutil.CSVFiles("Action\n", tt.actors, tt.movies))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)

			genres, actors, movies := counts(t, store)
			assert.Zero(t, genres, "genres must be rolled back")
			assert.Zero(t, actors, "actors must be rolled back")
			assert.Zero(t, movies, "movies must be rolled back")
		})
	}
}

func TestLoader_RerunOnPopulatedStoreIsNoop(t *testing.T) {
	loader, store := newLoader(t, config.UnresolvedSkip)
	ctx := context.Background()

	_, err := loader.Run(ctx, DefaultData())
	require.NoError(t, err)
	genres, actors, movies := counts(t, store)
	require.NotZero(t, movies)

	report, err := loader.Run(ctx, DefaultData())
	require.NoError(t, err)
	assert.True(t, report.Skipped)

	g2, a2, m2 := counts(t, store)
	assert.Equal(t, genres, g2)
	assert.Equal(t, actors, a2)
	assert.Equal(t, movies, m2)
}

func TestLoader_DuplicateGenreNameAborts(t *testing.T) {
	loader, store := newLoader(t, config.UnresolvedSkip)

	_, err := loader.Run(context.Background(), testutil.CSVFiles("Action\nAction\n", "", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `create genre "Action"`)

	genres, _, _ := counts(t, store)
	assert.Zero(t, genres)
}

func TestLoader_MissingSourceFile(t *testing.T) {
	loader, _ := newLoader(t, config.UnresolvedSkip)

	_, err := loader.Run(context.Background(), fstest.MapFS{GenresFile: {Data: []byte("Action\n")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open actors.csv")
}

func TestWriteMovies_RoundTripsThroughReader(t *testing.T) {
	movies := []models.Movie{
		{
			Title:       "Crouching Tiger, Hidden Dragon",
			ReleaseYear: 2000,
			Duration:    120,
			Genres:      []models.Genre{{Name: "Action"}, {Name: "Romance"}},
			Actors:      []models.Actor{{Name: "Chow Yun-fat"}},
		},
		{Title: "Untitled", ReleaseYear: 2024, Duration: 90},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMovies(&buf, movies))
	assert.True(t, strings.HasPrefix(buf.String(), `"Crouching Tiger, Hidden Dragon",2000,120,Action|Romance,Chow Yun-fat`))

	records, err := readMovies(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Crouching Tiger, Hidden Dragon", records[0].Title)
	assert.Equal(t, []string{"Action", "Romance"}, records[0].GenreNames)
	assert.Equal(t, []string{"Chow Yun-fat"}, records[0].ActorNames)
	assert.Empty(t, records[1].GenreNames)
	assert.Empty(t, records[1].ActorNames)
}
