package repository

import (
	"context"
	"time"

	"movie-catalog/internal/database"
)

// Store hands out the catalog repositories. Repositories obtained from the
// Store passed to a Transaction callback share that transaction.
type Store interface {
	Genres() GenreRepository
	Actors() ActorRepository
	Movies() MovieRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db     *database.Database
	genres GenreRepository
	actors ActorRepository
	movies MovieRepository
}

func NewStore(db *database.Database) Store {
	return &store{
		db:     db,
		genres: NewGenreRepository(db),
		actors: NewActorRepository(db),
		movies: NewMovieRepository(db),
	}
}

func (s *store) Genres() GenreRepository { return s.genres }
func (s *store) Actors() ActorRepository { return s.actors }
func (s *store) Movies() MovieRepository { return s.movies }

func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.Transaction(ctx, func(tx *database.Database) error {
		return fn(NewStore(tx))
	})
}

type base struct {
	db      *database.Database
	timeout time.Duration
}

func newBase(db *database.Database) base {
	return base{db: db, timeout: db.GetQueryTimeout()}
}

func (r *base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// uniqueIDs drops zero and repeated ids while keeping the first-seen order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// firstMissing returns the first id in want that is absent from have.
func firstMissing(want []uint, have map[uint]struct{}) (uint, bool) {
	for _, id := range want {
		if _, ok := have[id]; !ok {
			return id, true
		}
	}
	return 0, false
}
