package models

import (
	"errors"
	"strings"
)

type Category string

const (
	CategorySports    Category = "SPORTS"
	CategoryMusic     Category = "MUSIC"
	CategoryEducation Category = "EDUCATION"
	CategoryArts      Category = "ARTS"
	CategoryFood      Category = "FOOD"
	CategoryOther     Category = "OTHER"
)

// DefaultCategory is used when neither the caller nor configuration picks one.
const DefaultCategory = CategorySports

var ErrUnknownCategory = errors.New("unknown event category")

var categories = []Category{
	CategorySports,
	CategoryMusic,
	CategoryEducation,
	CategoryArts,
	CategoryFood,
	CategoryOther,
}

// ParseCategory matches s against the known categories, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range categories {
		if string(c) == want {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}
