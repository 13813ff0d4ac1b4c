package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-catalog/internal/config"
	"movie-catalog/internal/handlers"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/routes"
	"movie-catalog/internal/services"
	"movie-catalog/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type entity struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	BirthDate *string  `json:"birth_date"`
	Genres    []entity `json:"genres"`
	Actors    []entity `json:"actors"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	log := testutil.Logger()

	app := fiber.New()
	routes.Setup(app, routes.Handlers{
		Movies: handlers.NewMovieHandler(services.NewMovieService(store, config.PaginationConfig{DefaultSize: 10, MaxSize: 100}, log), log),
		Genres: handlers.NewGenreHandler(services.NewGenreService(store, log), log),
		Actors: handlers.NewActorHandler(services.NewActorService(store, log), log),
		Export: handlers.NewExportHandler(services.NewExportService(store, nil, log), log),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func create(t *testing.T, app *fiber.App, path string, body interface{}) entity {
	t.Helper()
	code, env := call(t, app, http.MethodPost, path, body)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var e entity
	require.NoError(t, json.Unmarshal(env.Data, &e))
	return e
}

func movieBody(title string, genres, actors []uint) fiber.Map {
	refs := func(ids []uint) []fiber.Map {
		out := []fiber.Map{}
		for _, id := range ids {
			out = append(out, fiber.Map{"id": id})
		}
		return out
	}
	return fiber.Map{
		"title":        title,
		"release_year": 2010,
		"duration":     148,
		"genres":       refs(genres),
		"actors":       refs(actors),
	}
}

func TestMovieLifecycle(t *testing.T) {
	app := newApp(t)
	action := create(t, app, "/api/v1/genres", fiber.Map{"name": "Action"})
	leo := create(t, app, "/api/v1/actors", fiber.Map{"name": "Leonardo DiCaprio", "birth_date": "1974-11-11"})
	hardy := create(t, app, "/api/v1/actors", fiber.Map{"name": "Tom Hardy"})

	movie := create(t, app, "/api/v1/movies", movieBody("Inception", []uint{action.ID}, []uint{leo.ID}))
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Action", movie.Genres[0].Name)

	code, env := call(t, app, http.MethodPost, fmt.Sprintf("/api/v1/movies/%d/actors", movie.ID), fiber.Map{"actor_ids": []uint{hardy.ID, leo.ID}})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var updated entity
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Len(t, updated.Actors, 2)

	code, env = call(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/movies/%d", movie.ID), fiber.Map{"title": "Inception 2", "genres": []fiber.Map{}})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Inception 2", updated.Title)
	assert.Len(t, updated.Genres, 1)

	code, env = call(t, app, http.MethodGet, "/api/v1/movies/search?title=INCEP", nil)
	require.Equal(t, fiber.StatusOK, code)
	var found []entity
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 1)

	code, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/movies/%d", movie.ID), nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, env = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/movies/%d", movie.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, fmt.Sprintf("movie not found with id: %d", movie.ID), env.Message)
}

func TestCreateMovie_Errors(t *testing.T) {
	app := newApp(t)

	code, env := call(t, app, http.MethodPost, "/api/v1/movies", fiber.Map{"release_year": 2010, "duration": 100})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "title: is required", env.Message)

	code, env = call(t, app, http.MethodPost, "/api/v1/movies", movieBody("Inception", []uint{42}, nil))
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "genre not found with id: 42", env.Message)

	code, _ = call(t, app, http.MethodGet, "/api/v1/movies/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestGuardedGenreDelete(t *testing.T) {
	app := newApp(t)
	action := create(t, app, "/api/v1/genres", fiber.Map{"name": "Action"})
	movie := create(t, app, "/api/v1/movies", movieBody("Heat", []uint{action.ID}, nil))

	code, env := call(t, app, http.MethodPost, "/api/v1/genres", fiber.Map{"name": "Action"})
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "genre with name 'Action' already exists", env.Message)

	code, env = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/genres/%d", action.ID), nil)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "cannot delete genre 'Action' because it is associated with 1 movies", env.Message)
	assert.JSONEq(t, `{"movies":1}`, string(env.Data))

	code, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/genres/%d?force=true", action.ID), nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, env = call(t, app, http.MethodGet, fmt.Sprintf("/api/v1/movies/%d", movie.ID), nil)
	require.Equal(t, fiber.StatusOK, code)
	var reloaded entity
	require.NoError(t, json.Unmarshal(env.Data, &reloaded))
	assert.Empty(t, reloaded.Genres)
}

func TestReplaceActorMovies_OverwritesToEmpty(t *testing.T) {
	app := newApp(t)
	actor := create(t, app, "/api/v1/actors", fiber.Map{"name": "Al Pacino"})
	heat := create(t, app, "/api/v1/movies", movieBody("Heat", nil, nil))

	path := fmt.Sprintf("/api/v1/actors/%d/movies", actor.ID)
	code, env := call(t, app, http.MethodPut, path, fiber.Map{"movie_ids": []uint{heat.ID}})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var movies []entity
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	assert.Len(t, movies, 1)

	code, env = call(t, app, http.MethodPut, path, fiber.Map{})
	require.Equal(t, fiber.StatusOK, code, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	assert.Empty(t, movies)

	code, _ = call(t, app, http.MethodPut, path, fiber.Map{"movie_ids": []uint{99}})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestActorBirthDate_EmptyStringRejected(t *testing.T) {
	app := newApp(t)

	code, _ := call(t, app, http.MethodPost, "/api/v1/actors", fiber.Map{"name": "Tom Hardy", "birth_date": ""})
	assert.Equal(t, fiber.StatusBadRequest, code)

	leo := create(t, app, "/api/v1/actors", fiber.Map{"name": "Leonardo DiCaprio", "birth_date": "1974-11-11"})
	path := fmt.Sprintf("/api/v1/actors/%d", leo.ID)

	code, _ = call(t, app, http.MethodPatch, path, fiber.Map{"birth_date": ""})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, env := call(t, app, http.MethodGet, path, nil)
	require.Equal(t, fiber.StatusOK, code)
	var reloaded entity
	require.NoError(t, json.Unmarshal(env.Data, &reloaded))
	require.NotNil(t, reloaded.BirthDate)
	assert.Equal(t, "1974-11-11", *reloaded.BirthDate)
}

func TestListMovies_PaginationMeta(t *testing.T) {
	app := newApp(t)
	for i := 0; i < 25; i++ {
		create(t, app, "/api/v1/movies", movieBody(fmt.Sprintf("Movie %02d", i), nil, nil))
	}

	code, env := call(t, app, http.MethodGet, "/api/v1/movies?page=2&size=10", nil)
	require.Equal(t, fiber.StatusOK, code)
	var movies []entity
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	assert.Len(t, movies, 5)
	assert.JSONEq(t, `{"page":2,"size":10,"total":25,"total_pages":3,"has_next":false,"has_previous":true}`, string(env.Meta))

	code, env = call(t, app, http.MethodGet, "/api/v1/movies?page=3&size=10", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))

	code, _ = call(t, app, http.MethodGet, "/api/v1/movies?year=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestExport(t *testing.T) {
	app := newApp(t)
	create(t, app, "/api/v1/movies", movieBody("Heat", nil, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/movies/export", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Heat,2010,148,,\n", string(raw))

	code, _ := call(t, app, http.MethodPost, "/api/v1/movies/export/archive", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
}
