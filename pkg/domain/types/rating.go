package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Rating is the qualitative severity tag carried by an answer option
type Rating string

const (
	RatingGreen   Rating = "GREEN"
	RatingAmber   Rating = "AMBER"
	RatingRed     Rating = "RED"
	RatingUnknown Rating = "UNKNOWN"
)

// AllRatings returns all valid ratings
func AllRatings() []Rating {
	return []Rating{
		RatingGreen,
		RatingAmber,
		RatingRed,
		RatingUnknown,
	}
}

// IsValid checks if the rating is one of the known tags
func (r Rating) IsValid() bool {
	switch r {
	case RatingGreen,
		RatingAmber,
		RatingRed,
		RatingUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the rating
func (r Rating) String() string {
	return string(r)
}

// ParseRating parses a string into a Rating
func ParseRating(s string) (Rating, error) {
	rating := Rating(s)
	if !rating.IsValid() {
		return "", goerr.New("invalid rating", goerr.V("rating", s))
	}
	return rating, nil
}

// RatingOfAnswerCode extracts the rating from a raw answer code such as "2-RED".
// The suffix after the last '-' is matched; anything unrecognized is RatingUnknown.
func RatingOfAnswerCode(code string) Rating {
	idx := strings.LastIndex(code, "-")
	if idx < 0 {
		return RatingUnknown
	}
	rating := Rating(code[idx+1:])
	if !rating.IsValid() {
		return RatingUnknown
	}
	return rating
}

// OrdinalOfAnswerCode returns the part of a raw answer code before the last '-'.
// ok is false when the code carries no separator.
func OrdinalOfAnswerCode(code string) (ordinal string, ok bool) {
	idx := strings.LastIndex(code, "-")
	if idx < 0 {
		return "", false
	}
	return code[:idx], true
}
