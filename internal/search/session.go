package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/sous/internal/spoonacular"
)

// Kind identifies which request family a Ticket belongs to.
type Kind int

const (
	KindIngredients Kind = iota
	KindRecipes
	KindDetail
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindIngredients:
		return "ingredients"
	case KindRecipes:
		return "recipes"
	case KindDetail:
		return "detail"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Ticket describes one outstanding request. Gen orders tickets of the same
// Kind; only the newest one may change visible state.
type Ticket struct {
	Kind        Kind
	Gen         uint64
	Query       string   // KindIngredients
	Ingredients []string // KindRecipes
	Number      int
	RecipeID    int // KindDetail

	id      uint64
	primary bool
}

// Outcome reports what happened when a Ticket was executed.
type Outcome struct {
	Ticket  Ticket
	Applied bool // false when a newer ticket superseded this one
	Err     error
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	Query       string
	Ingredients []spoonacular.Ingredient
	Filtered    []spoonacular.Ingredient
	Recipes     []spoonacular.Recipe
	Selected    *spoonacular.RecipeDetail
	Error       string
	Notice      string
	Loading     bool
	Pending     int
}

// Options configure a Session.
type Options struct {
	Fetcher           spoonacular.RecipeFetcher
	Logger            *zap.Logger
	AutocompleteLimit int
	SearchLimit       int
	IngredientLimit   int
}

// Session owns the recipe search state and hands out Tickets for the
// requests that change it. It is safe for concurrent use.
type Session struct {
	fetcher spoonacular.RecipeFetcher
	logger  *zap.Logger
	limits  Options

	mu          sync.Mutex
	query       string
	ingredients []spoonacular.Ingredient
	recipes     []spoonacular.Recipe
	selected    *spoonacular.RecipeDetail
	errMsg      string
	notice      string

	gens    [kindCount]uint64
	nextID  uint64
	pending map[uint64]Kind
}

// New builds a Session.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		fetcher: opts.Fetcher,
		logger:  logger,
		limits:  opts,
		pending: make(map[uint64]Kind),
	}
}

// SetQuery replaces the free-text query.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// Submit validates the query and, when it passes, returns a recipes Ticket.
// Validation failures set the error message and return a *ValidationError.
func (s *Session) Submit() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errMsg = ""
	s.notice = ""

	ingredients, err := ParseIngredients(s.query)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.errMsg = verr.Message
		}
		return Ticket{}, err
	}

	t := s.beginLocked(KindRecipes)
	t.Ingredients = ingredients
	t.Number = s.limits.SearchLimit
	t.primary = true
	return t, nil
}

// LookupIngredient returns a recipes Ticket scoped to a single ingredient.
func (s *Session) LookupIngredient(name string) (Ticket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ticket{}, fmt.Errorf("ingredient name required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The lookup replaces the result list the old error described.
	s.errMsg = ""
	s.notice = ""

	t := s.beginLocked(KindRecipes)
	t.Ingredients = []string{name}
	t.Number = s.limits.IngredientLimit
	return t, nil
}

// Autocomplete returns an ingredients Ticket for the current query, or false
// when the query is not a single term of at least MinTokenLength.
func (s *Session) Autocomplete() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term, ok := autocompleteTerm(s.query)
	if !ok {
		return Ticket{}, false
	}
	t := s.beginLocked(KindIngredients)
	t.Query = term
	t.Number = s.limits.AutocompleteLimit
	return t, true
}

// ViewRecipe returns a detail Ticket for the recipe id.
func (s *Session) ViewRecipe(id int) (Ticket, error) {
	if id <= 0 {
		return Ticket{}, fmt.Errorf("recipe id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notice = ""
	t := s.beginLocked(KindDetail)
	t.RecipeID = id
	return t, nil
}

// CloseDetail clears the selected recipe.
func (s *Session) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Cancel releases a Ticket that will never be executed.
func (s *Session) Cancel(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, t.id)
}

func (s *Session) beginLocked(kind Kind) Ticket {
	s.gens[kind]++
	if kind == KindRecipes {
		// A new result list makes any in-flight detail irrelevant.
		s.gens[KindDetail]++
	}
	s.nextID++
	s.pending[s.nextID] = kind
	return Ticket{Kind: kind, Gen: s.gens[kind], id: s.nextID}
}

// finishLocked releases t and reports whether it is still the newest
// ticket of its kind.
func (s *Session) finishLocked(t Ticket) bool {
	delete(s.pending, t.id)
	if t.Kind < 0 || t.Kind >= kindCount {
		return false
	}
	return t.Gen == s.gens[t.Kind]
}

// Execute performs the request described by t and applies the result.
func (s *Session) Execute(ctx context.Context, t Ticket) Outcome {
	if s.fetcher == nil {
		err := fmt.Errorf("no recipe fetcher configured")
		return Outcome{Ticket: t, Applied: s.complete(t, nil, nil, nil, err), Err: err}
	}

	switch t.Kind {
	case KindIngredients:
		items, err := s.fetcher.AutocompleteIngredients(ctx, t.Query, t.Number)
		if err != nil {
			s.logger.Warn("Error fetching ingredients", zap.String("query", t.Query), zap.Error(err))
		}
		return Outcome{Ticket: t, Applied: s.CompleteIngredients(t, items, err), Err: err}

	case KindRecipes:
		recipes, err := s.fetcher.FindByIngredients(ctx, t.Ingredients, t.Number)
		if err != nil {
			s.logger.Error("Error fetching recipes",
				zap.Strings("ingredients", t.Ingredients),
				zap.Bool("primary", t.primary),
				zap.Error(err))
		}
		return Outcome{Ticket: t, Applied: s.CompleteRecipes(t, recipes, err), Err: err}

	case KindDetail:
		detail, err := s.fetcher.RecipeInformation(ctx, t.RecipeID)
		if err != nil {
			s.logger.Error("Error fetching recipe details", zap.Int("recipe_id", t.RecipeID), zap.Error(err))
		}
		return Outcome{Ticket: t, Applied: s.CompleteDetail(t, detail, err), Err: err}
	}

	err := fmt.Errorf("unknown ticket kind %s", t.Kind)
	return Outcome{Ticket: t, Applied: s.complete(t, nil, nil, nil, err), Err: err}
}

// CompleteIngredients applies an autocomplete result.
func (s *Session) CompleteIngredients(t Ticket, items []spoonacular.Ingredient, err error) bool {
	return s.complete(t, items, nil, nil, err)
}

// CompleteRecipes applies a recipes-by-ingredients result.
func (s *Session) CompleteRecipes(t Ticket, recipes []spoonacular.Recipe, err error) bool {
	return s.complete(t, nil, recipes, nil, err)
}

// CompleteDetail applies a recipe information result.
func (s *Session) CompleteDetail(t Ticket, detail *spoonacular.RecipeDetail, err error) bool {
	return s.complete(t, nil, nil, detail, err)
}

func (s *Session) complete(t Ticket, items []spoonacular.Ingredient, recipes []spoonacular.Recipe, detail *spoonacular.RecipeDetail, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finishLocked(t) {
		s.logger.Debug("discarding stale response", zap.Stringer("kind", t.Kind), zap.Uint64("gen", t.Gen))
		return false
	}

	switch t.Kind {
	case KindIngredients:
		if err != nil {
			s.notice = "Ingredient suggestions are unavailable."
			return true
		}
		s.ingredients = cloneIngredients(items)

	case KindRecipes:
		if err != nil {
			if t.primary {
				s.errMsg = MsgFetchFailed
			} else {
				s.notice = fmt.Sprintf("Could not load recipes for %s.", strings.Join(t.Ingredients, ", "))
			}
			return true
		}
		s.recipes = cloneRecipes(recipes)
		s.selected = nil
		if len(recipes) == 0 {
			if t.primary {
				s.errMsg = MsgNoRecipes
			} else {
				s.notice = fmt.Sprintf("No recipes found for %s.", strings.Join(t.Ingredients, ", "))
			}
		}

	case KindDetail:
		if err != nil || detail == nil {
			s.notice = "Could not load recipe details."
			return true
		}
		dup := *detail
		s.selected = &dup
	}
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Query:       s.query,
		Ingredients: cloneIngredients(s.ingredients),
		Filtered:    FilterIngredients(s.ingredients, s.query),
		Recipes:     cloneRecipes(s.recipes),
		Error:       s.errMsg,
		Notice:      s.notice,
		Loading:     len(s.pending) > 0,
		Pending:     len(s.pending),
	}
	if s.selected != nil {
		dup := *s.selected
		snap.Selected = &dup
	}
	return snap
}

func cloneIngredients(items []spoonacular.Ingredient) []spoonacular.Ingredient {
	if len(items) == 0 {
		return nil
	}
	dup := make([]spoonacular.Ingredient, len(items))
	copy(dup, items)
	return dup
}

func cloneRecipes(items []spoonacular.Recipe) []spoonacular.Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]spoonacular.Recipe, len(items))
	copy(dup, items)
	return dup
}
