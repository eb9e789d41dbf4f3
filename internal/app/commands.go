package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/sous/internal/render"
	"github.com/five82/sous/internal/search"
)

// ErrNoSuggestions is returned by Ingredients for a query that cannot be
// autocompleted: a comma list or a term shorter than search.MinTokenLength.
var ErrNoSuggestions = errors.New("ingredient query must be a single term of at least 2 characters")

// QueryFromArgs joins command-line arguments into a search query. When any
// argument contains a comma the arguments are taken as free text; otherwise
// each argument is one ingredient.
func QueryFromArgs(args []string) string {
	for _, arg := range args {
		if strings.Contains(arg, ",") {
			return strings.Join(args, " ")
		}
	}
	return strings.Join(args, ", ")
}

// Find runs one multi-ingredient search and prints the recipe cards.
func (e *Env) Find(ctx context.Context, w io.Writer, query string) error {
	e.Session.SetQuery(query)
	t, err := e.Session.Submit()
	if err != nil {
		return err
	}
	out := e.Session.Execute(ctx, t)
	snap := e.Session.Snapshot()
	if out.Err != nil {
		return fmt.Errorf("%s: %w", snap.Error, out.Err)
	}
	if len(snap.Recipes) == 0 {
		fmt.Fprintln(w, search.MsgNoRecipes)
		return nil
	}
	for _, r := range snap.Recipes {
		fmt.Fprintf(w, "%8d  %s  (used %d, missing %d)\n", r.ID, r.Title, r.UsedIngredientCount, r.MissedIngredientCount)
	}
	return nil
}

// ShowRecipe fetches one recipe and prints it as terminal text.
func (e *Env) ShowRecipe(ctx context.Context, w io.Writer, id, width int) error {
	t, err := e.Session.ViewRecipe(id)
	if err != nil {
		return err
	}
	out := e.Session.Execute(ctx, t)
	if out.Err != nil {
		return fmt.Errorf("fetch recipe %d: %w", id, out.Err)
	}
	detail := e.Session.Snapshot().Selected
	if detail == nil {
		return fmt.Errorf("fetch recipe %d: no details returned", id)
	}

	r, err := render.New(render.Options{Mode: render.ModeFor(e.rich), Width: width})
	if err != nil {
		e.Logger.Warn("rich rendering unavailable", zap.Error(err))
		r, _ = render.New(render.Options{Width: width})
	}

	fmt.Fprintln(w, detail.Title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(detail.Title))))
	var facts []string
	if detail.ReadyInMinutes > 0 {
		facts = append(facts, fmt.Sprintf("Ready in %d min", detail.ReadyInMinutes))
	}
	if detail.Servings > 0 {
		facts = append(facts, fmt.Sprintf("Serves %d", detail.Servings))
	}
	if len(facts) > 0 {
		fmt.Fprintln(w, strings.Join(facts, " · "))
	}
	if detail.SourceURL != "" {
		fmt.Fprintf(w, "Source: %s\n", detail.SourceURL)
	}
	fmt.Fprintln(w)

	instructions := strings.TrimSpace(detail.Instructions)
	if instructions == "" {
		fmt.Fprintln(w, "No instructions provided.")
		return nil
	}
	text, err := r.Render(instructions)
	if err != nil {
		e.Logger.Warn("render instructions failed", zap.Error(err))
	}
	fmt.Fprintln(w, text)
	return nil
}

// Ingredients autocompletes query and prints the suggestions that match it.
func (e *Env) Ingredients(ctx context.Context, w io.Writer, query string) error {
	e.Session.SetQuery(query)
	t, ok := e.Session.Autocomplete()
	if !ok {
		return ErrNoSuggestions
	}
	out := e.Session.Execute(ctx, t)
	if out.Err != nil {
		return fmt.Errorf("autocomplete %q: %w", strings.TrimSpace(query), out.Err)
	}
	for _, ing := range e.Session.Snapshot().Filtered {
		fmt.Fprintln(w, ing.Name)
	}
	return nil
}
