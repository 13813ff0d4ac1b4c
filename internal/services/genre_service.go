package services

import (
	"context"
	"errors"
	"strings"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

type GenreService interface {
	GetAllGenres(ctx context.Context) ([]models.Genre, error)
	GetGenreByID(ctx context.Context, id uint) (*models.Genre, error)
	CreateGenre(ctx context.Context, name string) (*models.Genre, error)
	// UpdateGenre renames the genre when name is non-nil.
	UpdateGenre(ctx context.Context, id uint, name *string) (*models.Genre, error)
	// DeleteGenre refuses with a ConflictError while movies reference the
	// genre, unless force is set, in which case the genre is first removed
	// from each of those movies.
	DeleteGenre(ctx context.Context, id uint, force bool) error
}

type genreService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewGenreService(store repository.Store, logger *logrus.Logger) GenreService {
	return &genreService{
		store:  store,
		logger: logger,
	}
}

func (s *genreService) GetAllGenres(ctx context.Context) ([]models.Genre, error) {
	return s.store.Genres().FindAll(ctx)
}

func (s *genreService) GetGenreByID(ctx context.Context, id uint) (*models.Genre, error) {
	return s.store.Genres().FindByID(ctx, id)
}

func (s *genreService) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name", "genre name is required")
	}

	genre := &models.Genre{Name: name}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := ensureGenreNameFree(ctx, tx, name, 0); err != nil {
			return err
		}
		return tx.Genres().Create(ctx, genre)
	})
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, id uint, name *string) (*models.Genre, error) {
	var genre *models.Genre
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		genre, err = tx.Genres().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if name == nil {
			return nil
		}

		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return apperror.Validation("name", "genre name must not be blank")
		}
		if err := ensureGenreNameFree(ctx, tx, trimmed, id); err != nil {
			return err
		}
		genre.Name = trimmed
		return tx.Genres().Save(ctx, genre)
	})
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func ensureGenreNameFree(ctx context.Context, tx repository.Store, name string, selfID uint) error {
	existing, err := tx.Genres().FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.Duplicate("genre", name)
	}
	return nil
}

func (s *genreService) DeleteGenre(ctx context.Context, id uint, force bool) error {
	detached := 0
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		genre, err := tx.Genres().FindByID(ctx, id)
		if err != nil {
			return err
		}

		movies, err := tx.Movies().FindAllByGenreID(ctx, id)
		if err != nil {
			return err
		}
		if len(movies) > 0 && !force {
			return apperror.HasMovies("genre", genre.Name, len(movies))
		}

		for i := range movies {
			movie := &movies[i]
			movie.Genres = withoutGenre(movie.Genres, id)
			if err := tx.Movies().Save(ctx, movie); err != nil {
				return err
			}
			detached++
		}
		return tx.Genres().Delete(ctx, id)
	})
	if err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordGuardedDelete("genre", "conflict", 0)
			s.logger.WithFields(logrus.Fields{"id": id, "movies": conflict.Count}).Info("Refused to delete genre with movies")
		}
		return err
	}

	outcome := "deleted"
	if detached > 0 {
		outcome = "forced"
		s.logger.WithFields(logrus.Fields{"id": id, "movies": detached}).Info("Force-deleted genre")
	}
	metrics.RecordGuardedDelete("genre", outcome, detached)
	return nil
}

func withoutGenre(genres []models.Genre, id uint) []models.Genre {
	kept := make([]models.Genre, 0, len(genres))
	for _, g := range genres {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return kept
}
