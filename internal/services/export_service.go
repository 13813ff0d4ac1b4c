package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"movie-catalog/internal/repository"
	"movie-catalog/internal/seed"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrArchiveDisabled is returned by ArchiveMovies when no object storage is
// configured.
var ErrArchiveDisabled = errors.New("export archive storage is not configured")

// ExportArchive points at a stored catalog snapshot.
type ExportArchive struct {
	Object    string    `json:"object" example:"movies_2024-01-02T15-04-05Z_1a2b3c4d.csv"`
	Movies    int       `json:"movies" example:"8"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ExportService interface {
	// ExportMovies writes every movie as a movies.csv record, so the output
	// can be loaded back into an empty catalog.
	ExportMovies(ctx context.Context, w io.Writer) (int, error)
	// ArchiveMovies stores a fresh export in object storage and returns a
	// presigned download link.
	ArchiveMovies(ctx context.Context) (*ExportArchive, error)
}

type exportService struct {
	store   repository.Store
	storage ArchiveStorage
	logger  *logrus.Logger
	now     func() time.Time
}

// NewExportService builds the export service. storage may be nil, which
// disables ArchiveMovies.
func NewExportService(store repository.Store, storage ArchiveStorage, logger *logrus.Logger) ExportService {
	return &exportService{
		store:   store,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *exportService) ExportMovies(ctx context.Context, w io.Writer) (int, error) {
	movies, err := s.store.Movies().ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := seed.WriteMovies(w, movies); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return len(movies), nil
}

func (s *exportService) ArchiveMovies(ctx context.Context) (*ExportArchive, error) {
	if s.storage == nil {
		return nil, ErrArchiveDisabled
	}

	var buf bytes.Buffer
	count, err := s.ExportMovies(ctx, &buf)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	object := fmt.Sprintf("movies_%s_%s.csv", now.Format("2006-01-02T15-04-05Z"), uuid.New().String()[:8])
	if err := s.storage.Put(ctx, object, "text/csv", &buf, int64(buf.Len())); err != nil {
		return nil, err
	}

	link, expiry, err := s.storage.PresignedGetURL(ctx, object)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"object": object,
		"movies": count,
	}).Info("Catalog export archived")

	return &ExportArchive{
		Object:    object,
		Movies:    count,
		URL:       link,
		ExpiresAt: now.Add(expiry),
	}, nil
}
