package search

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/sous/internal/spoonacular"
)

// MinTokenLength is the shortest ingredient name a search accepts, counted
// in Unicode code points after trimming. A single character outside the
// Basic Multilingual Plane is one code point and so is too short.
const MinTokenLength = 2

// User-facing messages.
const (
	MsgEmptyQuery    = "Please enter at least one ingredient."
	MsgTokenTooShort = "Each ingredient should have a minimum length of 2 characters."
	MsgNoRecipes     = "No recipes found."
	MsgFetchFailed   = "Error fetching recipes. Please try again."
)

// Validation failure reasons, matched with errors.Is.
var (
	ErrEmptyQuery    = errors.New("empty query")
	ErrTokenTooShort = errors.New("token too short")
)

// ValidationError is returned when a query is rejected before any request
// is made.
type ValidationError struct {
	Reason  error
	Message string
	Token   string // offending token for ErrTokenTooShort
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// ParseIngredients splits a comma-separated query into trimmed ingredient
// names.
func ParseIngredients(raw string) ([]string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return nil, &ValidationError{Reason: ErrEmptyQuery, Message: MsgEmptyQuery}
	}

	parts := strings.Split(query, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if utf8.RuneCountInString(token) < MinTokenLength {
			return nil, &ValidationError{Reason: ErrTokenTooShort, Message: MsgTokenTooShort, Token: token}
		}
		ingredients = append(ingredients, token)
	}
	return ingredients, nil
}

// FilterIngredients returns the ingredients whose name contains query,
// ignoring case and surrounding whitespace. Order is preserved and a blank
// query keeps everything.
func FilterIngredients(list []spoonacular.Ingredient, query string) []spoonacular.Ingredient {
	lower := cases.Lower(language.Und)
	needle := lower.String(strings.TrimSpace(query))
	if needle == "" {
		return cloneIngredients(list)
	}

	var out []spoonacular.Ingredient
	for _, ingredient := range list {
		if strings.Contains(lower.String(ingredient.Name), needle) {
			out = append(out, ingredient)
		}
	}
	return out
}

// autocompleteTerm returns the term to autocomplete for query, if any.
func autocompleteTerm(query string) (string, bool) {
	term := strings.TrimSpace(query)
	if strings.Contains(term, ",") || utf8.RuneCountInString(term) < MinTokenLength {
		return "", false
	}
	return term, true
}
