package model

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

// AnswerOption is one selectable answer of a question
type AnswerOption struct {
	Ordinal int          `json:"ordinal"`
	Text    string       `json:"text"`
	Rating  types.Rating `json:"rating"`
}

// Code returns the raw answer code stored in assessments, e.g. "2-AMBER"
func (o AnswerOption) Code() string {
	return strconv.Itoa(o.Ordinal) + "-" + o.Rating.String()
}

// Question is a survey question with its ordered answer options
type Question struct {
	Key     string         `json:"key"`
	Text    string         `json:"text"`
	Options []AnswerOption `json:"options"`
}

// Page groups questions for survey rendering
type Page struct {
	Name      string     `json:"name"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

type catalogEntry struct {
	question *Question
	position int
	options  map[string]*AnswerOption
}

// Catalog is the materialized set of survey questions. It is indexed by
// question key on construction and must not be modified afterwards; values
// returned by its accessors share memory with the catalog and are read-only.
type Catalog struct {
	Pages []Page `json:"pages"`

	index map[string]catalogEntry
	keys  []string
}

// NewCatalog builds an indexed catalog from pages. Pages are deep copied so
// later changes by the caller do not leak into the catalog.
func NewCatalog(pages []Page) (*Catalog, error) {
	c := &Catalog{
		Pages: make([]Page, len(pages)),
		index: make(map[string]catalogEntry),
	}

	for pi, page := range pages {
		copied := Page{
			Name:      page.Name,
			Title:     page.Title,
			Questions: make([]Question, len(page.Questions)),
		}
		for qi, q := range page.Questions {
			copied.Questions[qi] = Question{
				Key:     q.Key,
				Text:    q.Text,
				Options: append([]AnswerOption(nil), q.Options...),
			}
		}
		c.Pages[pi] = copied
	}

	for pi := range c.Pages {
		for qi := range c.Pages[pi].Questions {
			q := &c.Pages[pi].Questions[qi]
			if strings.TrimSpace(q.Key) == "" {
				return nil, goerr.Wrap(ErrEmptyQuestionKey, "question key is required",
					goerr.V(PageNameKey, c.Pages[pi].Name),
					goerr.V(QuestionIndexKey, qi))
			}
			if _, exists := c.index[q.Key]; exists {
				return nil, goerr.Wrap(ErrDuplicateQuestionKey, "question key must be unique",
					goerr.V(QuestionKeyKey, q.Key))
			}

			options := make(map[string]*AnswerOption, len(q.Options))
			for oi := range q.Options {
				opt := &q.Options[oi]
				if !opt.Rating.IsValid() {
					return nil, goerr.Wrap(ErrInvalidRating, "answer option has unknown rating",
						goerr.V(QuestionKeyKey, q.Key),
						goerr.V(RatingKey, opt.Rating))
				}
				ordinal := strconv.Itoa(opt.Ordinal)
				if _, exists := options[ordinal]; exists {
					return nil, goerr.Wrap(ErrDuplicateOrdinal, "answer ordinal must be unique within a question",
						goerr.V(QuestionKeyKey, q.Key),
						goerr.V(OrdinalKey, opt.Ordinal))
				}
				options[ordinal] = opt
			}

			c.index[q.Key] = catalogEntry{
				question: q,
				position: len(c.keys),
				options:  options,
			}
			c.keys = append(c.keys, q.Key)
		}
	}

	return c, nil
}

// Lookup returns the question for key and its position in catalog order
func (c *Catalog) Lookup(key string) (*Question, int, bool) {
	if c == nil {
		return nil, 0, false
	}
	entry, ok := c.index[key]
	if !ok {
		return nil, 0, false
	}
	return entry.question, entry.position, true
}

// Option returns the answer option of question key with the given ordinal
func (c *Catalog) Option(key, ordinal string) (*AnswerOption, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.index[key]
	if !ok {
		return nil, false
	}
	opt, ok := entry.options[ordinal]
	return opt, ok
}

// Has reports whether the catalog defines question key
func (c *Catalog) Has(key string) bool {
	_, _, ok := c.Lookup(key)
	return ok
}

// Len returns the number of questions across all pages
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns all question keys in catalog order
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}
