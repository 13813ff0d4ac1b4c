package repository

import (
	"context"
	"errors"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	Save(ctx context.Context, genre *models.Genre) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Genre, error)
	// FindByIDs resolves every id or fails with NotFound for the first
	// missing one. Duplicate ids collapse to a single genre.
	FindByIDs(ctx context.Context, ids []uint) ([]models.Genre, error)
	FindByName(ctx context.Context, name string) (*models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
	Count(ctx context.Context) (int64, error)
}

type genreRepository struct {
	base
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{base: newBase(db)}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Create(genre).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Duplicate("genre", genre.Name)
	}
	return err
}

func (r *genreRepository) Save(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Save(genre).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Duplicate("genre", genre.Name)
	}
	return err
}

func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Genre{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("genre", id)
	}
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("genre", id)
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Genre, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&genres).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]struct{}, len(genres))
	for _, g := range genres {
		found[g.ID] = struct{}{}
	}
	if id, missing := firstMissing(ids, found); missing {
		return nil, apperror.NotFound("genre", id)
	}
	return genres, nil
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("id").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Genre{}).Count(&count).Error
	return count, err
}
