package utils

import (
	"errors"
	"fmt"
	"testing"

	"movie-catalog/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaginationMeta(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		size  int
		total int64
		want  PaginationMeta
	}{
		{
			name: "first of three", page: 0, size: 10, total: 25,
			want: PaginationMeta{Page: 0, Size: 10, Total: 25, TotalPages: 3, HasNext: true},
		},
		{
			name: "last page", page: 2, size: 10, total: 25,
			want: PaginationMeta{Page: 2, Size: 10, Total: 25, TotalPages: 3, HasPrevious: true},
		},
		{
			name: "past the end", page: 3, size: 10, total: 25,
			want: PaginationMeta{Page: 3, Size: 10, Total: 25, TotalPages: 3, HasPrevious: true},
		},
		{
			name: "empty", page: 0, size: 10, total: 0,
			want: PaginationMeta{Page: 0, Size: 10, Total: 0, TotalPages: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreatePaginationMeta(tt.page, tt.size, tt.total))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, StatusFor(apperror.NotFound("movie", 1)))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(apperror.Validation("title", "is required")))
	assert.Equal(t, fiber.StatusConflict, StatusFor(apperror.HasMovies("genre", "Action", 2)))
	assert.Equal(t, fiber.StatusConflict, StatusFor(fmt.Errorf("wrapped: %w", apperror.Duplicate("genre", "Action"))))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(errors.New("boom")))
}

type sampleRequest struct {
	Title    string `json:"title" validate:"required"`
	Year     *int   `json:"release_year" validate:"required,gte=1888"`
	Duration int    `json:"duration" validate:"gt=0"`
	Genres   []uint `json:"genre_ids" validate:"dive,gt=0"`
}

func TestValidateStruct(t *testing.T) {
	year := 2010
	require.NoError(t, ValidateStruct(sampleRequest{Title: "Inception", Year: &year, Duration: 148}))

	err := ValidateStruct(sampleRequest{Year: &year, Duration: 148})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Equal(t, "title: is required", err.Error())

	old := 1800
	err = ValidateStruct(sampleRequest{Title: "Old", Year: &old, Duration: 1})
	assert.Equal(t, "release_year: must be greater than or equal to 1888", err.Error())

	err = ValidateStruct(sampleRequest{Title: "Zero", Year: &year, Duration: 1, Genres: []uint{1, 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be greater than 0")
}
