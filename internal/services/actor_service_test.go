package services

import (
	"context"
	"errors"
	"testing"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	born, err := models.ParseDate("1964-09-02")
	require.NoError(t, err)
	keanu, err := f.actors.CreateActor(ctx, " Keanu Reeves ", &born)
	require.NoError(t, err)
	assert.Equal(t, "Keanu Reeves", keanu.Name)

	_, err = f.actors.CreateActor(ctx, "", nil)
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	f.actor(t, "Carrie-Anne Moss")

	found, err := f.actors.GetAllActors(ctx, "REEVES")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, keanu.ID, found[0].ID)

	all, err := f.actors.GetAllActors(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	name := "Keanu Charles Reeves"
	updated, err := f.actors.UpdateActor(ctx, keanu.ID, ActorUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	require.NotNil(t, updated.BirthDate)
	assert.Equal(t, "1964-09-02", updated.BirthDate.String())

	blank := "  "
	_, err = f.actors.UpdateActor(ctx, keanu.ID, ActorUpdate{Name: &blank})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = f.actors.GetActorByID(ctx, 404)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestReplaceActorMovies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.actor(t, "A")
	b := f.actor(t, "B")
	heat := f.movie(t, "Heat", 1995, nil, ids(a.ID, b.ID))
	ronin := f.movie(t, "Ronin", 1998, nil, nil)
	casino := f.movie(t, "Casino", 1995, nil, nil)

	movies, err := f.actors.ReplaceActorMovies(ctx, a.ID, ids(ronin.ID, casino.ID))
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, ronin.ID, movies[0].ID)
	assert.Equal(t, casino.ID, movies[1].ID)

	// applying the same set twice changes nothing
	movies, err = f.actors.ReplaceActorMovies(ctx, a.ID, ids(casino.ID, ronin.ID))
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	reloaded, err := f.movies.GetMovieByID(ctx, heat.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, reloaded.ActorIDs())

	movies, err = f.actors.ReplaceActorMovies(ctx, a.ID, []uint{})
	require.NoError(t, err)
	assert.Empty(t, movies)

	filmography, err := f.actors.GetActorMovies(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, filmography)
}

func TestReplaceActorMovies_UnknownMovieRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.actor(t, "A")
	heat := f.movie(t, "Heat", 1995, nil, ids(a.ID))

	_, err := f.actors.ReplaceActorMovies(ctx, a.ID, ids(heat.ID, 77))
	require.Error(t, err)
	assert.Equal(t, "movie not found with id: 77", err.Error())

	filmography, err := f.actors.GetActorMovies(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, filmography, 1)
	assert.Equal(t, heat.ID, filmography[0].ID)
}

func TestDeleteActor_Guarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.actor(t, "A")
	b := f.actor(t, "B")
	heat := f.movie(t, "Heat", 1995, nil, ids(a.ID, b.ID))

	err := f.actors.DeleteActor(ctx, a.ID, false)
	require.Error(t, err)
	assert.Equal(t, "cannot delete actor 'A' because it is associated with 1 movies", err.Error())

	reloaded, err := f.movies.GetMovieByID(ctx, heat.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, reloaded.ActorIDs())

	require.NoError(t, f.actors.DeleteActor(ctx, a.ID, true))

	reloaded, err = f.movies.GetMovieByID(ctx, heat.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, reloaded.ActorIDs())

	_, err = f.actors.GetActorByID(ctx, a.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = f.actors.DeleteActor(ctx, a.ID, true)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
