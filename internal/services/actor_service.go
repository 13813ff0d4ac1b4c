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

// ActorUpdate carries a partial actor update. Nil fields are left untouched.
type ActorUpdate struct {
	Name      *string
	BirthDate *models.Date
}

type ActorService interface {
	// GetAllActors lists every actor, or only those whose name contains
	// name (case-insensitive) when it is non-empty.
	GetAllActors(ctx context.Context, name string) ([]models.Actor, error)
	GetActorByID(ctx context.Context, id uint) (*models.Actor, error)
	CreateActor(ctx context.Context, name string, birthDate *models.Date) (*models.Actor, error)
	UpdateActor(ctx context.Context, id uint, update ActorUpdate) (*models.Actor, error)
	DeleteActor(ctx context.Context, id uint, force bool) error

	GetActorMovies(ctx context.Context, id uint) ([]models.Movie, error)
	// ReplaceActorMovies sets the actor's filmography to exactly movieIDs.
	// An empty list removes the actor from every movie.
	ReplaceActorMovies(ctx context.Context, id uint, movieIDs []uint) ([]models.Movie, error)
}

type actorService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewActorService(store repository.Store, logger *logrus.Logger) ActorService {
	return &actorService{
		store:  store,
		logger: logger,
	}
}

func (s *actorService) GetAllActors(ctx context.Context, name string) ([]models.Actor, error) {
	if name = strings.TrimSpace(name); name != "" {
		return s.store.Actors().SearchByName(ctx, name)
	}
	return s.store.Actors().FindAll(ctx)
}

func (s *actorService) GetActorByID(ctx context.Context, id uint) (*models.Actor, error) {
	return s.store.Actors().FindByID(ctx, id)
}

func (s *actorService) CreateActor(ctx context.Context, name string, birthDate *models.Date) (*models.Actor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("name", "actor name is required")
	}

	actor := &models.Actor{Name: name, BirthDate: birthDate}
	if err := s.store.Actors().Create(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *actorService) UpdateActor(ctx context.Context, id uint, update ActorUpdate) (*models.Actor, error) {
	var actor *models.Actor
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		actor, err = tx.Actors().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return apperror.Validation("name", "actor name must not be blank")
			}
			actor.Name = name
		}
		if update.BirthDate != nil {
			actor.BirthDate = update.BirthDate
		}
		return tx.Actors().Save(ctx, actor)
	})
	if err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *actorService) DeleteActor(ctx context.Context, id uint, force bool) error {
	detached := 0
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		actor, err := tx.Actors().FindByID(ctx, id)
		if err != nil {
			return err
		}

		movies, err := tx.Movies().FindAllByActorID(ctx, id)
		if err != nil {
			return err
		}
		if len(movies) > 0 && !force {
			return apperror.HasMovies("actor", actor.Name, len(movies))
		}

		if len(movies) > 0 {
			if err := tx.Actors().ReplaceMovies(ctx, id, nil); err != nil {
				return err
			}
			detached = len(movies)
		}
		return tx.Actors().Delete(ctx, id)
	})
	if err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordGuardedDelete("actor", "conflict", 0)
			s.logger.WithFields(logrus.Fields{"id": id, "movies": conflict.Count}).Info("Refused to delete actor with movies")
		}
		return err
	}

	outcome := "deleted"
	if detached > 0 {
		outcome = "forced"
		s.logger.WithFields(logrus.Fields{"id": id, "movies": detached}).Info("Force-deleted actor")
	}
	metrics.RecordGuardedDelete("actor", outcome, detached)
	return nil
}

func (s *actorService) GetActorMovies(ctx context.Context, id uint) ([]models.Movie, error) {
	if _, err := s.store.Actors().FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Movies().FindAllByActorID(ctx, id)
}

func (s *actorService) ReplaceActorMovies(ctx context.Context, id uint, movieIDs []uint) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Actors().FindByID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Movies().FindByIDs(ctx, movieIDs); err != nil {
			return err
		}
		if err := tx.Actors().ReplaceMovies(ctx, id, movieIDs); err != nil {
			return err
		}

		var err error
		movies, err = tx.Movies().FindAllByActorID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}
