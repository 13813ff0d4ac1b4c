package repository

import (
	"context"
	"errors"
	"strings"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *models.Actor) error
	Save(ctx context.Context, actor *models.Actor) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Actor, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Actor, error)
	FindAll(ctx context.Context) ([]models.Actor, error)
	SearchByName(ctx context.Context, name string) ([]models.Actor, error)
	Count(ctx context.Context) (int64, error)
	// ReplaceMovies overwrites the actor's edges in movie_actors with
	// exactly movieIDs. An empty slice detaches the actor from every movie.
	ReplaceMovies(ctx context.Context, actorID uint, movieIDs []uint) error
}

type actorRepository struct {
	base
}

func NewActorRepository(db *database.Database) ActorRepository {
	return &actorRepository{base: newBase(db)}
}

func (r *actorRepository) Create(ctx context.Context, actor *models.Actor) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(actor).Error
}

func (r *actorRepository) Save(ctx context.Context, actor *models.Actor) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Save(actor).Error
}

func (r *actorRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Actor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("actor", id)
	}
	return nil
}

func (r *actorRepository) FindByID(ctx context.Context, id uint) (*models.Actor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var actor models.Actor
	err := r.db.WithContext(ctx).First(&actor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("actor", id)
		}
		return nil, err
	}
	return &actor, nil
}

func (r *actorRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Actor, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Actor{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var actors []models.Actor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&actors).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]struct{}, len(actors))
	for _, a := range actors {
		found[a.ID] = struct{}{}
	}
	if id, missing := firstMissing(ids, found); missing {
		return nil, apperror.NotFound("actor", id)
	}
	return actors, nil
}

func (r *actorRepository) FindAll(ctx context.Context) ([]models.Actor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var actors []models.Actor
	err := r.db.WithContext(ctx).Order("id").Find(&actors).Error
	return actors, err
}

func (r *actorRepository) SearchByName(ctx context.Context, name string) ([]models.Actor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var actors []models.Actor
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '\\'", containsPattern(name)).
		Order("id").
		Find(&actors).Error
	return actors, err
}

func (r *actorRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Actor{}).Count(&count).Error
	return count, err
}

func (r *actorRepository) ReplaceMovies(ctx context.Context, actorID uint, movieIDs []uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	movieIDs = uniqueIDs(movieIDs)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("actor_id = ?", actorID).Delete(&models.MovieActor{}).Error; err != nil {
			return err
		}
		if len(movieIDs) == 0 {
			return nil
		}
		edges := make([]models.MovieActor, 0, len(movieIDs))
		for _, movieID := range movieIDs {
			edges = append(edges, models.MovieActor{MovieID: movieID, ActorID: actorID})
		}
		return tx.Create(&edges).Error
	})
}

// containsPattern builds a lower-cased LIKE pattern matching s anywhere,
// escaping the LIKE wildcards in s.
func containsPattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(s)) + "%"
}
