// Package seed populates an empty catalog from three CSV sources: a genre name
// list, actor records and movie records that name their genres and actors.
//
// Loading is ordered. Genres and actors are created first and their ids are
// registered by name, so the movie phase can resolve the names embedded in
// each movie record to identities before the movie's edges are saved. The
// whole run shares one transaction: a malformed record leaves the store as
// empty as it was.
package seed

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/config"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

// UnresolvedRef is a genre or actor name in a movie record that matched no
// loaded entity.
type UnresolvedRef struct {
	Line  int    `json:"line"`
	Movie string `json:"movie"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
}

type Report struct {
	Skipped    bool            `json:"skipped"`
	Genres     int             `json:"genres"`
	Actors     int             `json:"actors"`
	Movies     int             `json:"movies"`
	Unresolved []UnresolvedRef `json:"unresolved,omitempty"`
}

type Loader struct {
	store  repository.Store
	policy string
	logger *logrus.Logger
}

// NewLoader builds a loader. policy is config.UnresolvedSkip or
// config.UnresolvedFail; anything else behaves like skip.
func NewLoader(store repository.Store, policy string, logger *logrus.Logger) *Loader {
	return &Loader{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// Run loads genres.csv, actors.csv and movies.csv from data when the catalog
// has no genres yet. On a populated catalog it does nothing and reports
// Skipped, which makes repeated process starts safe.
func (l *Loader) Run(ctx context.Context, data fs.FS) (*Report, error) {
	count, err := l.store.Genres().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count genres: %w", err)
	}
	if count > 0 {
		l.logger.WithField("genres", count).Info("Catalog already populated, skipping data load")
		return &Report{Skipped: true}, nil
	}

	l.logger.Info("Starting data loading")
	started := time.Now()

	report := &Report{}
	err = l.store.Transaction(ctx, func(tx repository.Store) error {
		run := &loadRun{
			tx:     tx,
			data:   data,
			policy: l.policy,
			genres: NewResolver(),
			actors: NewResolver(),
			report: report,
		}
		if err := run.loadGenres(ctx); err != nil {
			return err
		}
		if err := run.loadActors(ctx); err != nil {
			return err
		}
		return run.loadMovies(ctx)
	})
	if err != nil {
		l.logger.WithError(err).Error("Data loading aborted")
		return nil, err
	}

	elapsed := time.Since(started)
	metrics.RecordSeed(report.Genres, report.Actors, report.Movies, elapsed)
	for _, ref := range report.Unresolved {
		metrics.SeedUnresolvedRefs.WithLabelValues(ref.Kind).Inc()
		l.logger.WithFields(logrus.Fields{
			"line":  ref.Line,
			"movie": ref.Movie,
			"kind":  ref.Kind,
			"name":  ref.Name,
		}).Warn("Dropped unresolved reference")
	}

	l.logger.WithFields(logrus.Fields{
		"genres":     report.Genres,
		"actors":     report.Actors,
		"movies":     report.Movies,
		"unresolved": len(report.Unresolved),
		"duration":   elapsed.String(),
	}).Info("Data loading finished successfully")

	return report, nil
}

// loadRun holds the state of one load: the transaction and the name
// resolvers, which are dropped when the run ends.
type loadRun struct {
	tx     repository.Store
	data   fs.FS
	policy string
	genres *Resolver
	actors *Resolver
	report *Report
}

func (r *loadRun) loadGenres(ctx context.Context) error {
	f, err := r.data.Open(GenresFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", GenresFile, err)
	}
	defer f.Close()

	names, err := readGenres(f)
	if err != nil {
		return err
	}

	for _, name := range names {
		genre := &models.Genre{Name: name}
		if err := r.tx.Genres().Create(ctx, genre); err != nil {
			return fmt.Errorf("create genre %q: %w", name, err)
		}
		r.genres.Register(name, genre.ID)
		r.report.Genres++
	}
	return nil
}

func (r *loadRun) loadActors(ctx context.Context) error {
	f, err := r.data.Open(ActorsFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", ActorsFile, err)
	}
	defer f.Close()

	records, err := readActors(f)
	if err != nil {
		return err
	}

	for _, rec := range records {
		birthDate := rec.BirthDate
		actor := &models.Actor{Name: rec.Name, BirthDate: &birthDate}
		if err := r.tx.Actors().Create(ctx, actor); err != nil {
			return fmt.Errorf("create actor %q: %w", rec.Name, err)
		}
		r.actors.Register(rec.Name, actor.ID)
		r.report.Actors++
	}
	return nil
}

func (r *loadRun) loadMovies(ctx context.Context) error {
	f, err := r.data.Open(MoviesFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", MoviesFile, err)
	}
	defer f.Close()

	records, err := readMovies(f)
	if err != nil {
		return err
	}

	for _, rec := range records {
		movie := &models.Movie{
			Title:       rec.Title,
			ReleaseYear: rec.Year,
			Duration:    rec.Duration,
		}
		if err := r.tx.Movies().Create(ctx, movie); err != nil {
			return fmt.Errorf("create movie %q: %w", rec.Title, err)
		}

		genreIDs, err := r.resolve(rec, "genre", rec.GenreNames, r.genres)
		if err != nil {
			return err
		}
		for _, id := range genreIDs {
			movie.Genres = append(movie.Genres, models.Genre{ID: id})
		}

		actorIDs, err := r.resolve(rec, "actor", rec.ActorNames, r.actors)
		if err != nil {
			return err
		}
		for _, id := range actorIDs {
			movie.Actors = append(movie.Actors, models.Actor{ID: id})
		}

		if err := r.tx.Movies().Save(ctx, movie); err != nil {
			return fmt.Errorf("save movie %q: %w", rec.Title, err)
		}
		r.report.Movies++
	}
	return nil
}

// resolve maps names to ids, dropping repeats. Names that do not resolve are
// recorded in the report, or fail the run under the fail policy.
func (r *loadRun) resolve(rec movieRecord, kind string, names []string, resolver *Resolver) ([]uint, error) {
	ids := make([]uint, 0, len(names))
	seen := make(map[uint]struct{}, len(names))
	for _, name := range names {
		id, ok := resolver.Resolve(name)
		if !ok {
			if r.policy == config.UnresolvedFail {
				return nil, apperror.Validation(MoviesFile, "line %d: movie %q references unknown %s %q", rec.Line, rec.Title, kind, name)
			}
			r.report.Unresolved = append(r.report.Unresolved, UnresolvedRef{
				Line:  rec.Line,
				Movie: rec.Title,
				Kind:  kind,
				Name:  name,
			})
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
