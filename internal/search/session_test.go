package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/sous/internal/spoonacular"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeFetcher struct {
	mu sync.Mutex

	autocompleteCalls int
	findCalls         int
	detailCalls       int
	lastQuery         string
	lastIngredients   []string
	lastNumber        int
	lastRecipeID      int

	ingredients []spoonacular.Ingredient
	recipes     []spoonacular.Recipe
	detail      *spoonacular.RecipeDetail
	err         error

	onCall func()
}

func (f *fakeFetcher) AutocompleteIngredients(_ context.Context, query string, number int) ([]spoonacular.Ingredient, error) {
	f.record(func() {
		f.autocompleteCalls++
		f.lastQuery = query
		f.lastNumber = number
	})
	return f.ingredients, f.err
}

func (f *fakeFetcher) FindByIngredients(_ context.Context, ingredients []string, number int) ([]spoonacular.Recipe, error) {
	f.record(func() {
		f.findCalls++
		f.lastIngredients = append([]string(nil), ingredients...)
		f.lastNumber = number
	})
	return f.recipes, f.err
}

func (f *fakeFetcher) RecipeInformation(_ context.Context, id int) (*spoonacular.RecipeDetail, error) {
	f.record(func() {
		f.detailCalls++
		f.lastRecipeID = id
	})
	return f.detail, f.err
}

func (f *fakeFetcher) record(update func()) {
	f.mu.Lock()
	update()
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.autocompleteCalls + f.findCalls + f.detailCalls
}

func newTestSession(f *fakeFetcher) *Session {
	return New(Options{Fetcher: f, AutocompleteLimit: 10, IngredientLimit: 10})
}

func TestSubmit_BlankQueryNeverFetches(t *testing.T) {
	for _, query := range []string{"", " ", "\t\n", "    "} {
		f := &fakeFetcher{}
		s := newTestSession(f)
		s.SetQuery(query)

		_, err := s.Submit()
		if !errors.Is(err, ErrEmptyQuery) {
			t.Fatalf("Submit(%q) error = %v, want ErrEmptyQuery", query, err)
		}
		snap := s.Snapshot()
		if snap.Error != MsgEmptyQuery {
			t.Fatalf("Submit(%q) Error = %q, want %q", query, snap.Error, MsgEmptyQuery)
		}
		if snap.Loading {
			t.Fatalf("Submit(%q) left Loading set", query)
		}
		if f.calls() != 0 {
			t.Fatalf("Submit(%q) made %d fetcher calls, want 0", query, f.calls())
		}
	}
}

func TestSubmit_ShortTokenNeverFetches(t *testing.T) {
	for _, query := range []string{"e", "egg, r", "egg,,rice", "egg, rice, ", " a , bb"} {
		f := &fakeFetcher{}
		s := newTestSession(f)
		s.SetQuery(query)

		_, err := s.Submit()
		var verr *ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, ErrTokenTooShort) {
			t.Fatalf("Submit(%q) error = %v, want ErrTokenTooShort", query, err)
		}
		if got := s.Snapshot().Error; got != MsgTokenTooShort {
			t.Fatalf("Submit(%q) Error = %q, want %q", query, got, MsgTokenTooShort)
		}
		if f.calls() != 0 {
			t.Fatalf("Submit(%q) made %d fetcher calls, want 0", query, f.calls())
		}
	}
}

func TestSubmit_SplitsAndTrimsIngredients(t *testing.T) {
	f := &fakeFetcher{recipes: []spoonacular.Recipe{{ID: 1, Title: "Egg Fried Rice"}}}
	s := newTestSession(f)
	s.SetQuery("egg, rice")

	ticket, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	out := s.Execute(context.Background(), ticket)
	if out.Err != nil || !out.Applied {
		t.Fatalf("Execute = %+v, want applied without error", out)
	}
	if diff := cmp.Diff([]string{"egg", "rice"}, f.lastIngredients); diff != "" {
		t.Fatalf("ingredients sent (-want +got):\n%s", diff)
	}
	if f.lastNumber != 0 {
		t.Fatalf("number = %d, want 0 for a primary search", f.lastNumber)
	}
	snap := s.Snapshot()
	if len(snap.Recipes) != 1 || snap.Error != "" {
		t.Fatalf("snapshot = %+v, want one recipe and no error", snap)
	}
}

func TestSubmit_ClearsPreviousError(t *testing.T) {
	f := &fakeFetcher{recipes: []spoonacular.Recipe{{ID: 1}}}
	s := newTestSession(f)

	s.SetQuery("")
	_, _ = s.Submit()
	if s.Snapshot().Error == "" {
		t.Fatalf("expected validation error to be set")
	}

	s.SetQuery("egg")
	if _, err := s.Submit(); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := s.Snapshot().Error; got != "" {
		t.Fatalf("Error = %q, want cleared at start of new attempt", got)
	}
}

func TestExecute_EmptyResultSetsNoRecipes(t *testing.T) {
	f := &fakeFetcher{recipes: []spoonacular.Recipe{}}
	s := newTestSession(f)
	s.SetQuery("dragonfruit")

	ticket, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	s.Execute(context.Background(), ticket)

	if got := s.Snapshot().Error; got != MsgNoRecipes {
		t.Fatalf("Error = %q, want %q", got, MsgNoRecipes)
	}
}

func TestExecute_LoadingWrapsEveryCall(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		start func(*Session) (Ticket, error)
	}{
		{"search success", nil, func(s *Session) (Ticket, error) { s.SetQuery("egg"); return s.Submit() }},
		{"search failure", errors.New("boom"), func(s *Session) (Ticket, error) { s.SetQuery("egg"); return s.Submit() }},
		{"ingredient failure", errors.New("boom"), func(s *Session) (Ticket, error) { return s.LookupIngredient("garlic") }},
		{"detail failure", errors.New("boom"), func(s *Session) (Ticket, error) { return s.ViewRecipe(9) }},
		{"autocomplete failure", errors.New("boom"), func(s *Session) (Ticket, error) {
			s.SetQuery("gar")
			tk, _ := s.Autocomplete()
			return tk, nil
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFetcher{err: tc.err, detail: &spoonacular.RecipeDetail{Recipe: spoonacular.Recipe{ID: 9, Title: "x"}}}
			s := newTestSession(f)

			var loadingDuring bool
			f.onCall = func() { loadingDuring = s.Snapshot().Loading }

			ticket, err := tc.start(s)
			if err != nil {
				t.Fatalf("start returned error: %v", err)
			}
			if !s.Snapshot().Loading {
				t.Fatalf("Loading = false after issuing ticket, want true")
			}
			s.Execute(context.Background(), ticket)
			if !loadingDuring {
				t.Fatalf("Loading = false during fetch, want true")
			}
			if s.Snapshot().Loading {
				t.Fatalf("Loading = true after completion, want false")
			}
		})
	}
}

func TestExecute_PrimaryFailureSurfacesErrorAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fakeFetcher{err: errors.New("connection refused")}
	s := New(Options{Fetcher: f, Logger: zap.New(core)})
	s.SetQuery("egg")

	ticket, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	out := s.Execute(context.Background(), ticket)
	if out.Err == nil {
		t.Fatalf("Outcome.Err = nil, want fetch error")
	}
	if got := s.Snapshot().Error; got != MsgFetchFailed {
		t.Fatalf("Error = %q, want %q", got, MsgFetchFailed)
	}
	if n := logs.FilterMessage("Error fetching recipes").Len(); n != 1 {
		t.Fatalf("logged %d recipe errors, want 1", n)
	}
}

func TestLookupIngredient_ClearsStaleSearchError(t *testing.T) {
	f := &fakeFetcher{}
	s := newTestSession(f)
	s.SetQuery("durian")
	ticket, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	s.Execute(context.Background(), ticket)
	if got := s.Snapshot().Error; got != MsgNoRecipes {
		t.Fatalf("Error = %q, want %q", got, MsgNoRecipes)
	}

	f.recipes = []spoonacular.Recipe{{ID: 5, Title: "Garlic Bread"}}
	ticket, err = s.LookupIngredient("garlic")
	if err != nil {
		t.Fatalf("LookupIngredient returned error: %v", err)
	}
	if got := s.Snapshot().Error; got != "" {
		t.Fatalf("Error = %q after lookup started, want empty", got)
	}
	s.Execute(context.Background(), ticket)
	snap := s.Snapshot()
	if snap.Error != "" || len(snap.Recipes) != 1 {
		t.Fatalf("snapshot = %+v, want lookup results without the old error", snap)
	}
}

func TestExecute_SecondaryFailuresOnlyNotice(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &fakeFetcher{err: errors.New("timeout")}
	s := New(Options{Fetcher: f, Logger: zap.New(core), IngredientLimit: 10})

	ticket, err := s.LookupIngredient("garlic")
	if err != nil {
		t.Fatalf("LookupIngredient returned error: %v", err)
	}
	s.Execute(context.Background(), ticket)
	if f.lastNumber != 10 {
		t.Fatalf("number = %d, want 10 for single ingredient lookup", f.lastNumber)
	}
	snap := s.Snapshot()
	if snap.Error != "" {
		t.Fatalf("Error = %q, want empty for secondary failure", snap.Error)
	}
	if snap.Notice == "" {
		t.Fatalf("Notice empty, want secondary failure notice")
	}

	ticket, err = s.ViewRecipe(42)
	if err != nil {
		t.Fatalf("ViewRecipe returned error: %v", err)
	}
	s.Execute(context.Background(), ticket)
	snap = s.Snapshot()
	if snap.Error != "" || snap.Selected != nil {
		t.Fatalf("snapshot = %+v, want no error and no selection", snap)
	}
	if n := logs.FilterMessage("Error fetching recipe details").Len(); n != 1 {
		t.Fatalf("logged %d detail errors, want 1", n)
	}
}

func TestExecute_DetailOpensAndCloseClears(t *testing.T) {
	detail := &spoonacular.RecipeDetail{
		Recipe:       spoonacular.Recipe{ID: 7, Title: "Shakshuka", Image: "https://img.example/7.jpg"},
		Instructions: "<p>Simmer.</p>",
	}
	f := &fakeFetcher{recipes: []spoonacular.Recipe{{ID: 7, Title: "Shakshuka"}}, detail: detail}
	s := newTestSession(f)

	ticket, err := s.ViewRecipe(7)
	if err != nil {
		t.Fatalf("ViewRecipe returned error: %v", err)
	}
	s.Execute(context.Background(), ticket)

	snap := s.Snapshot()
	if snap.Selected == nil {
		t.Fatalf("Selected = nil, want recipe 7")
	}
	if diff := cmp.Diff(*detail, *snap.Selected); diff != "" {
		t.Fatalf("selected recipe (-want +got):\n%s", diff)
	}
	if f.lastRecipeID != 7 {
		t.Fatalf("recipe id = %d, want 7", f.lastRecipeID)
	}

	s.CloseDetail()
	if s.Snapshot().Selected != nil {
		t.Fatalf("Selected not cleared by CloseDetail")
	}
	s.CloseDetail()
	if s.Snapshot().Selected != nil {
		t.Fatalf("CloseDetail with nothing selected should stay nil")
	}
}

func TestRecipesSuccessClearsSelection(t *testing.T) {
	f := &fakeFetcher{
		recipes: []spoonacular.Recipe{{ID: 1}},
		detail:  &spoonacular.RecipeDetail{Recipe: spoonacular.Recipe{ID: 1, Title: "a"}},
	}
	s := newTestSession(f)

	ticket, _ := s.ViewRecipe(1)
	s.Execute(context.Background(), ticket)
	if s.Snapshot().Selected == nil {
		t.Fatalf("expected selection after detail fetch")
	}

	ticket, _ = s.LookupIngredient("egg")
	s.Execute(context.Background(), ticket)
	if s.Snapshot().Selected != nil {
		t.Fatalf("Selected should be cleared by a new recipe list")
	}
}

func TestStaleRecipesResponseIsDiscarded(t *testing.T) {
	s := newTestSession(&fakeFetcher{})
	s.SetQuery("egg")

	older, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	newer, err := s.LookupIngredient("rice")
	if err != nil {
		t.Fatalf("LookupIngredient returned error: %v", err)
	}

	if !s.CompleteRecipes(newer, []spoonacular.Recipe{{ID: 2, Title: "Rice Pudding"}}, nil) {
		t.Fatalf("newer response not applied")
	}
	if !s.Snapshot().Loading {
		t.Fatalf("Loading = false while older request is outstanding")
	}
	if s.CompleteRecipes(older, nil, errors.New("late failure")) {
		t.Fatalf("stale response applied")
	}

	snap := s.Snapshot()
	if len(snap.Recipes) != 1 || snap.Recipes[0].ID != 2 {
		t.Fatalf("Recipes = %+v, want newer result", snap.Recipes)
	}
	if snap.Error != "" {
		t.Fatalf("Error = %q, stale failure must not surface", snap.Error)
	}
	if snap.Loading {
		t.Fatalf("Loading = true after both requests finished")
	}
}

func TestRecipesTicketSupersedesInFlightDetail(t *testing.T) {
	s := newTestSession(&fakeFetcher{})
	s.SetQuery("egg")

	detail, _ := s.ViewRecipe(5)
	recipes, _ := s.Submit()

	if s.CompleteDetail(detail, &spoonacular.RecipeDetail{Recipe: spoonacular.Recipe{ID: 5, Title: "late"}}, nil) {
		t.Fatalf("detail issued before a new search should be stale")
	}
	if s.Snapshot().Selected != nil {
		t.Fatalf("stale detail opened a modal")
	}
	s.CompleteRecipes(recipes, []spoonacular.Recipe{{ID: 1}}, nil)
	if s.Snapshot().Loading {
		t.Fatalf("Loading = true after all tickets completed")
	}
}

func TestAutocomplete_EligibilityAndReplacement(t *testing.T) {
	f := &fakeFetcher{ingredients: []spoonacular.Ingredient{{ID: 1, Name: "Garlic"}, {ID: 2, Name: "Onion"}}}
	s := newTestSession(f)

	for _, query := range []string{"", "g", "egg, gar"} {
		s.SetQuery(query)
		if _, ok := s.Autocomplete(); ok {
			t.Fatalf("Autocomplete(%q) ok = true, want false", query)
		}
	}

	s.SetQuery("  gar ")
	ticket, ok := s.Autocomplete()
	if !ok {
		t.Fatalf("Autocomplete ok = false, want true")
	}
	s.Execute(context.Background(), ticket)
	if f.lastQuery != "gar" || f.lastNumber != 10 {
		t.Fatalf("autocomplete query=%q number=%d, want gar/10", f.lastQuery, f.lastNumber)
	}

	snap := s.Snapshot()
	if len(snap.Ingredients) != 2 {
		t.Fatalf("Ingredients = %+v, want full list", snap.Ingredients)
	}
	want := []spoonacular.Ingredient{{ID: 1, Name: "Garlic"}}
	if diff := cmp.Diff(want, snap.Filtered); diff != "" {
		t.Fatalf("Filtered (-want +got):\n%s", diff)
	}
}

func TestCancelReleasesLoading(t *testing.T) {
	s := newTestSession(&fakeFetcher{})
	ticket, _ := s.ViewRecipe(3)
	if !s.Snapshot().Loading {
		t.Fatalf("Loading = false, want true")
	}
	s.Cancel(ticket)
	if s.Snapshot().Loading {
		t.Fatalf("Loading = true after Cancel")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	f := &fakeFetcher{recipes: []spoonacular.Recipe{{ID: 1, Title: "a"}}}
	s := newTestSession(f)
	ticket, _ := s.LookupIngredient("egg")
	s.Execute(context.Background(), ticket)

	snap := s.Snapshot()
	snap.Recipes[0].Title = "mutated"
	if got := s.Snapshot().Recipes[0].Title; got != "a" {
		t.Fatalf("Snapshot should clone recipes; got %q want a", got)
	}
}

func TestExecute_ConcurrentTicketsSettle(t *testing.T) {
	f := &fakeFetcher{recipes: []spoonacular.Recipe{{ID: 1}}}
	s := newTestSession(f)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		ticket, err := s.LookupIngredient("egg")
		if err != nil {
			t.Fatalf("LookupIngredient returned error: %v", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Execute(context.Background(), ticket)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Loading || snap.Pending != 0 {
		t.Fatalf("Loading=%v Pending=%d after all executions, want settled", snap.Loading, snap.Pending)
	}
	if len(snap.Recipes) != 1 {
		t.Fatalf("Recipes = %+v, want the newest result", snap.Recipes)
	}
}
