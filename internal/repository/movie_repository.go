package repository

import (
	"context"
	"errors"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository interface {
	// CRUD operations
	Create(ctx context.Context, movie *models.Movie) error
	// Save upserts the movie's columns and makes its genre and actor edges
	// match movie.Genres and movie.Actors exactly.
	Save(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Movie, error)
	ListAll(ctx context.Context) ([]models.Movie, error)
	Count(ctx context.Context) (int64, error)

	// Association operations
	AddActors(ctx context.Context, movie *models.Movie, actors []models.Actor) error

	// Paginated reads
	FindAll(ctx context.Context, page models.PageRequest) ([]models.Movie, int64, error)
	FindByGenre(ctx context.Context, genreID uint, page models.PageRequest) ([]models.Movie, int64, error)
	FindByYear(ctx context.Context, year int, page models.PageRequest) ([]models.Movie, int64, error)
	FindByActor(ctx context.Context, actorID uint, page models.PageRequest) ([]models.Movie, int64, error)

	// Unpaginated reads
	FindAllByGenreID(ctx context.Context, genreID uint) ([]models.Movie, error)
	FindAllByActorID(ctx context.Context, actorID uint) ([]models.Movie, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Movie, error)
}

type movieRepository struct {
	base
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{base: newBase(db)}
}

func (r *movieRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id") }).
		Preload("Actors", func(db *gorm.DB) *gorm.DB { return db.Order("actors.id") })
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// Referenced genres and actors already exist; only the edges are written.
	return r.db.WithContext(ctx).Omit("Genres.*", "Actors.*").Create(movie).Error
}

func (r *movieRepository) Save(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	genres, actors := movie.Genres, movie.Actors

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(movie).Error; err != nil {
			return err
		}
		if err := replaceAssociation(tx, movie, "Genres", genres); err != nil {
			return err
		}
		return replaceAssociation(tx, movie, "Actors", actors)
	})
}

func replaceAssociation[T any](tx *gorm.DB, movie *models.Movie, name string, members []T) error {
	assoc := tx.Model(movie).Omit(name + ".*").Association(name)
	if len(members) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(members)
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// Selecting the associations removes the movie's join rows first.
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Movie{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("movie", id)
	}
	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.withAssociations(r.db.WithContext(ctx)).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("movie", id)
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Movie, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&movies).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]struct{}, len(movies))
	for _, m := range movies {
		found[m.ID] = struct{}{}
	}
	if id, missing := firstMissing(ids, found); missing {
		return nil, apperror.NotFound("movie", id)
	}
	return movies, nil
}

func (r *movieRepository) ListAll(ctx context.Context) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	err := r.withAssociations(r.db.WithContext(ctx)).Order("movies.id").Find(&movies).Error
	return movies, err
}

func (r *movieRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&count).Error
	return count, err
}

func (r *movieRepository) AddActors(ctx context.Context, movie *models.Movie, actors []models.Actor) error {
	if len(actors) == 0 {
		return nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// Append never removes existing edges; pairs already present are ignored.
	return r.db.WithContext(ctx).Model(movie).Omit("Actors.*").Association("Actors").Append(actors)
}

func (r *movieRepository) FindAll(ctx context.Context, page models.PageRequest) ([]models.Movie, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.paginate(r.db.WithContext(ctx).Model(&models.Movie{}), page)
}

func (r *movieRepository) FindByGenre(ctx context.Context, genreID uint, page models.PageRequest) ([]models.Movie, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.paginate(r.byGenre(r.db.WithContext(ctx), genreID), page)
}

func (r *movieRepository) FindByYear(ctx context.Context, year int, page models.PageRequest) ([]models.Movie, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Movie{}).Where("movies.release_year = ?", year)
	return r.paginate(query, page)
}

func (r *movieRepository) FindByActor(ctx context.Context, actorID uint, page models.PageRequest) ([]models.Movie, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.paginate(r.byActor(r.db.WithContext(ctx), actorID), page)
}

func (r *movieRepository) FindAllByGenreID(ctx context.Context, genreID uint) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	err := r.withAssociations(r.byGenre(r.db.WithContext(ctx), genreID)).Order("movies.id").Find(&movies).Error
	return movies, err
}

func (r *movieRepository) FindAllByActorID(ctx context.Context, actorID uint) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	err := r.withAssociations(r.byActor(r.db.WithContext(ctx), actorID)).Order("movies.id").Find(&movies).Error
	return movies, err
}

func (r *movieRepository) SearchByTitle(ctx context.Context, title string) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("LOWER(movies.title) LIKE ? ESCAPE '\\'", containsPattern(title)).
		Order("movies.id").
		Find(&movies).Error
	return movies, err
}

func (r *movieRepository) byGenre(db *gorm.DB, genreID uint) *gorm.DB {
	return db.Model(&models.Movie{}).
		Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
		Where("movie_genres.genre_id = ?", genreID)
}

func (r *movieRepository) byActor(db *gorm.DB, actorID uint) *gorm.DB {
	return db.Model(&models.Movie{}).
		Joins("JOIN movie_actors ON movie_actors.movie_id = movies.id").
		Where("movie_actors.actor_id = ?", actorID)
}

// paginate counts the rows matched by query and loads the requested page.
// A page past the end yields an empty slice, not an error.
func (r *movieRepository) paginate(query *gorm.DB, page models.PageRequest) ([]models.Movie, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	movies := []models.Movie{}
	// page count is compared before Offset() so a huge page index cannot overflow
	if page.Size <= 0 || int64(page.Page) >= (total+int64(page.Size)-1)/int64(page.Size) {
		return movies, total, nil
	}

	err := r.withAssociations(query).
		Order("movies.id").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}
