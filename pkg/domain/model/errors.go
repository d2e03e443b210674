package model

import "github.com/m-mizutani/goerr/v2"

// Catalog construction errors
var (
	ErrEmptyQuestionKey     = goerr.New("empty question key")
	ErrDuplicateQuestionKey = goerr.New("duplicate question key")
	ErrDuplicateOrdinal     = goerr.New("duplicate answer ordinal")
	ErrInvalidRating        = goerr.New("invalid rating")
)

// Context keys for error values
const (
	PageNameKey      = "page_name"
	QuestionKeyKey   = "question_key"
	QuestionIndexKey = "question_index"
	OrdinalKey       = "ordinal"
	RatingKey        = "rating"
)
