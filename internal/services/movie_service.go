package services

import (
	"context"
	"math"
	"strings"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

// MovieInput describes a new movie. Genre and actor ids must all exist.
type MovieInput struct {
	Title       string
	ReleaseYear int
	Duration    int
	GenreIDs    []uint
	ActorIDs    []uint
}

// MoviePatch is a partial movie update. Nil scalars and empty id lists leave
// the corresponding field unchanged; a non-empty id list replaces the whole
// association.
type MoviePatch struct {
	Title       *string
	ReleaseYear *int
	Duration    *int
	GenreIDs    []uint
	ActorIDs    []uint
}

type MovieService interface {
	// CRUD operations
	CreateMovie(ctx context.Context, input MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id uint, patch MoviePatch) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
	GetMovieByID(ctx context.Context, id uint) (*models.Movie, error)

	// Query operations
	ListMovies(ctx context.Context, filter models.MovieFilter, page models.PageRequest) ([]models.Movie, int64, models.PageRequest, error)
	SearchMovies(ctx context.Context, title string) ([]models.Movie, error)

	// Cast operations
	AddActors(ctx context.Context, id uint, actorIDs []uint) (*models.Movie, error)
	GetMovieActors(ctx context.Context, id uint) ([]models.Actor, error)
}

type movieService struct {
	store      repository.Store
	pagination config.PaginationConfig
	logger     *logrus.Logger
}

func NewMovieService(store repository.Store, pagination config.PaginationConfig, logger *logrus.Logger) MovieService {
	return &movieService{
		store:      store,
		pagination: pagination,
		logger:     logger,
	}
}

func (s *movieService) CreateMovie(ctx context.Context, input MovieInput) (*models.Movie, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.Validation("title", "movie title is required")
	}

	var created *models.Movie
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		genres, err := tx.Genres().FindByIDs(ctx, input.GenreIDs)
		if err != nil {
			return err
		}
		actors, err := tx.Actors().FindByIDs(ctx, input.ActorIDs)
		if err != nil {
			return err
		}

		movie := &models.Movie{
			Title:       title,
			ReleaseYear: input.ReleaseYear,
			Duration:    input.Duration,
			Genres:      genres,
			Actors:      actors,
		}
		if err := tx.Movies().Create(ctx, movie); err != nil {
			return err
		}

		created, err = tx.Movies().FindByID(ctx, movie.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":     created.ID,
		"title":  created.Title,
		"genres": len(created.Genres),
		"actors": len(created.Actors),
	}).Info("Movie created")
	return created, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uint, patch MoviePatch) (*models.Movie, error) {
	var updated *models.Movie
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		movie, err := tx.Movies().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return apperror.Validation("title", "movie title must not be blank")
			}
			movie.Title = title
		}
		if patch.ReleaseYear != nil {
			movie.ReleaseYear = *patch.ReleaseYear
		}
		if patch.Duration != nil {
			movie.Duration = *patch.Duration
		}
		if len(patch.GenreIDs) > 0 {
			if movie.Genres, err = tx.Genres().FindByIDs(ctx, patch.GenreIDs); err != nil {
				return err
			}
		}
		if len(patch.ActorIDs) > 0 {
			if movie.Actors, err = tx.Actors().FindByIDs(ctx, patch.ActorIDs); err != nil {
				return err
			}
		}

		if err := tx.Movies().Save(ctx, movie); err != nil {
			return err
		}
		updated, err = tx.Movies().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Movies().FindByID(ctx, id); err != nil {
			return err
		}
		return tx.Movies().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("id", id).Info("Movie deleted")
	return nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id uint) (*models.Movie, error) {
	return s.store.Movies().FindByID(ctx, id)
}

// ListMovies applies at most one filter, picked in the order genre, year,
// actor. The returned PageRequest is the page actually served after the
// size has been clamped.
func (s *movieService) ListMovies(ctx context.Context, filter models.MovieFilter, page models.PageRequest) ([]models.Movie, int64, models.PageRequest, error) {
	page = s.normalizePage(page)
	movies := s.store.Movies()

	var (
		result []models.Movie
		total  int64
		err    error
	)
	switch {
	case filter.GenreID != nil:
		result, total, err = movies.FindByGenre(ctx, *filter.GenreID, page)
	case filter.Year != nil:
		result, total, err = movies.FindByYear(ctx, *filter.Year, page)
	case filter.ActorID != nil:
		result, total, err = movies.FindByActor(ctx, *filter.ActorID, page)
	default:
		result, total, err = movies.FindAll(ctx, page)
	}
	if err != nil {
		return nil, 0, page, err
	}
	return result, total, page, nil
}

func (s *movieService) normalizePage(page models.PageRequest) models.PageRequest {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = s.pagination.DefaultSize
	}
	if s.pagination.MaxSize > 0 && page.Size > s.pagination.MaxSize {
		page.Size = s.pagination.MaxSize
	}
	if page.Size <= 0 {
		page.Size = 10
	}
	if page.Page > math.MaxInt32 {
		page.Page = math.MaxInt32
	}
	return page
}

func (s *movieService) SearchMovies(ctx context.Context, title string) ([]models.Movie, error) {
	return s.store.Movies().SearchByTitle(ctx, strings.TrimSpace(title))
}

func (s *movieService) AddActors(ctx context.Context, id uint, actorIDs []uint) (*models.Movie, error) {
	var updated *models.Movie
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		movie, err := tx.Movies().FindByID(ctx, id)
		if err != nil {
			return err
		}
		actors, err := tx.Actors().FindByIDs(ctx, actorIDs)
		if err != nil {
			return err
		}
		if err := tx.Movies().AddActors(ctx, movie, actors); err != nil {
			return err
		}
		updated, err = tx.Movies().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *movieService) GetMovieActors(ctx context.Context, id uint) ([]models.Actor, error) {
	movie, err := s.store.Movies().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return movie.Actors, nil
}
