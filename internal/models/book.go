package models

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	PublishYear int                `bson:"publishYear" json:"publishYear"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookInput is the payload accepted by create and update. Fields are
// pointers so a missing field can be told apart from a zero value.
type BookInput struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	PublishYear *int    `json:"publishYear"`
}

var (
	errYearNotNumber = errors.New("publishYear must be a number")
	errYearNotWhole  = errors.New("publishYear must be a whole number")
)

// UnmarshalJSON accepts publishYear as any JSON number or numeric string
// holding a whole value (1965, 1965.0, "1965"). An empty string counts as
// missing.
func (in *BookInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title       *string         `json:"title"`
		Author      *string         `json:"author"`
		PublishYear json.RawMessage `json:"publishYear"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	year, err := parsePublishYear(raw.PublishYear)
	if err != nil {
		return err
	}

	in.Title, in.Author, in.PublishYear = raw.Title, raw.Author, year
	return nil
}

func parsePublishYear(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var num json.Number
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		num = json.Number(s)
	} else if err := json.Unmarshal(raw, &num); err != nil {
		return nil, errYearNotNumber
	}

	f, err := num.Float64()
	if err != nil || math.IsNaN(f) {
		return nil, errYearNotNumber
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, errYearNotWhole
	}

	year := int(f)
	return &year, nil
}

const (
	BookEntity = "book"

	RequiredFieldsMessage = "Send all required fields: title, author, publishYear"
)

// HasRequiredFields reports whether title, author and publishYear are all
// present. Empty strings count as missing; a publishYear of 0 does not.
func (in BookInput) HasRequiredFields() bool {
	if in.Title == nil || *in.Title == "" {
		return false
	}
	if in.Author == nil || *in.Author == "" {
		return false
	}
	return in.PublishYear != nil
}

// Apply copies the input fields onto b. Callers must check HasRequiredFields first.
func (in BookInput) Apply(b *Book) {
	b.Title = *in.Title
	b.Author = *in.Author
	b.PublishYear = *in.PublishYear
}
