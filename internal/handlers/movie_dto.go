package handlers

import (
	"movie-catalog/internal/models"
)

// Ref points at an existing genre, actor or movie by id.
type Ref struct {
	ID uint `json:"id" validate:"required" example:"1"`
}

func refIDs(refs []Ref) []uint {
	if refs == nil {
		return nil
	}
	ids := make([]uint, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

type MovieRequest struct {
	Title       string `json:"title" validate:"required" example:"Inception"`
	ReleaseYear *int   `json:"release_year" validate:"required,gte=1888" example:"2010"`
	Duration    *int   `json:"duration" validate:"required,gt=0" example:"148"`
	Genres      []Ref  `json:"genres" validate:"dive"`
	Actors      []Ref  `json:"actors" validate:"dive"`
}

// MovieUpdateRequest is a partial update. Omitted fields keep their value;
// omitted or empty genres/actors keep the current associations.
type MovieUpdateRequest struct {
	Title       *string `json:"title" example:"Inception"`
	ReleaseYear *int    `json:"release_year" validate:"omitempty,gte=1888" example:"2010"`
	Duration    *int    `json:"duration" validate:"omitempty,gt=0" example:"148"`
	Genres      []Ref   `json:"genres" validate:"dive"`
	Actors      []Ref   `json:"actors" validate:"dive"`
}

type AddActorsRequest struct {
	ActorIDs []uint `json:"actor_ids" validate:"required,min=1,dive,gt=0" example:"1,2"`
}

// ActorMoviesRequest is the complete filmography of an actor. An empty list
// clears it.
type ActorMoviesRequest struct {
	MovieIDs []uint `json:"movie_ids" validate:"dive,gt=0" example:"1,2"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required" example:"Action"`
}

type GenreUpdateRequest struct {
	Name *string `json:"name" example:"Action"`
}

type ActorRequest struct {
	Name      string       `json:"name" validate:"required" example:"Leonardo DiCaprio"`
	BirthDate *models.Date `json:"birth_date" swaggertype:"string" example:"1974-11-11"`
}

type ActorUpdateRequest struct {
	Name      *string      `json:"name" example:"Leonardo DiCaprio"`
	BirthDate *models.Date `json:"birth_date" swaggertype:"string" example:"1974-11-11"`
}
