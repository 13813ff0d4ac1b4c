package seed

import (
	"bufio"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/models"
)

const (
	GenresFile = "genres.csv"
	ActorsFile = "actors.csv"
	MoviesFile = "movies.csv"

	// NameSeparator splits the genre and actor lists inside a movie record.
	NameSeparator = "|"
)

//go:embed data/*.csv
var embedded embed.FS

// DefaultData returns the sample catalog compiled into the binary.
func DefaultData() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

type actorRecord struct {
	Line      int
	Name      string
	BirthDate models.Date
}

type movieRecord struct {
	Line       int
	Title      string
	Year       int
	Duration   int
	GenreNames []string
	ActorNames []string
}

// readGenres returns the trimmed, non-blank lines of the genre list.
func readGenres(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", GenresFile, err)
	}
	return names, nil
}

// readActors parses name,birth-date records. A date that is not a valid
// calendar date fails the whole read.
func readActors(r io.Reader) ([]actorRecord, error) {
	var records []actorRecord
	err := eachRecord(r, ActorsFile, 2, func(line int, fields []string) error {
		name := strings.TrimSpace(fields[0])
		if name == "" {
			return apperror.Validation(ActorsFile, "line %d: actor name is blank", line)
		}
		date, err := models.ParseDate(fields[1])
		if err != nil {
			return apperror.Validation(ActorsFile, "line %d: invalid birth date %q for %s", line, strings.TrimSpace(fields[1]), name)
		}
		records = append(records, actorRecord{Line: line, Name: name, BirthDate: date})
		return nil
	})
	return records, err
}

// readMovies parses title,year,duration,genres,actors records where genres
// and actors are pipe-separated name lists.
func readMovies(r io.Reader) ([]movieRecord, error) {
	var records []movieRecord
	err := eachRecord(r, MoviesFile, 5, func(line int, fields []string) error {
		title := strings.TrimSpace(fields[0])
		if title == "" {
			return apperror.Validation(MoviesFile, "line %d: movie title is blank", line)
		}
		year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return apperror.Validation(MoviesFile, "line %d: invalid release year %q", line, strings.TrimSpace(fields[1]))
		}
		duration, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return apperror.Validation(MoviesFile, "line %d: invalid duration %q", line, strings.TrimSpace(fields[2]))
		}
		records = append(records, movieRecord{
			Line:       line,
			Title:      title,
			Year:       year,
			Duration:   duration,
			GenreNames: splitNames(fields[3]),
			ActorNames: splitNames(fields[4]),
		})
		return nil
	})
	return records, err
}

func eachRecord(r io.Reader, file string, minFields int, fn func(line int, fields []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return apperror.Validation(file, "%v", err)
		}
		line, _ := reader.FieldPos(0)
		if len(fields) < minFields {
			return apperror.Validation(file, "line %d: expected %d fields, got %d", line, minFields, len(fields))
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
}

func splitNames(list string) []string {
	var names []string
	for _, name := range strings.Split(list, NameSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// WriteMovies writes movies in the movies.csv record format so an export can
// be fed back to the loader.
func WriteMovies(w io.Writer, movies []models.Movie) error {
	writer := csv.NewWriter(w)
	for _, m := range movies {
		genres := make([]string, 0, len(m.Genres))
		for _, g := range m.Genres {
			genres = append(genres, g.Name)
		}
		actors := make([]string, 0, len(m.Actors))
		for _, a := range m.Actors {
			actors = append(actors, a.Name)
		}
		record := []string{
			m.Title,
			strconv.Itoa(m.ReleaseYear),
			strconv.Itoa(m.Duration),
			strings.Join(genres, NameSeparator),
			strings.Join(actors, NameSeparator),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
