package spoonacular

import (
	"errors"
	"strings"

	"github.com/five82/sous/internal/termtext"
)

// Ingredient mirrors one entry of /food/ingredients/autocomplete.
type Ingredient struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Recipe is the summary returned by /recipes/findByIngredients.
type Recipe struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	Summary               string `json:"summary"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
	Likes                 int    `json:"likes"`
}

// RecipeDetail mirrors /recipes/{id}/information.
type RecipeDetail struct {
	Recipe
	Instructions   string `json:"instructions"`
	ReadyInMinutes int    `json:"readyInMinutes"`
	Servings       int    `json:"servings"`
	SourceURL      string `json:"sourceUrl"`
}

var (
	errMissingID    = errors.New("recipe missing id")
	errMissingTitle = errors.New("recipe missing title")
)

// clean strips terminal control sequences from the single-line fields.
// Summary and Instructions are HTML and are cleaned when rendered.
func (r *Recipe) clean() {
	r.Title = strings.TrimSpace(termtext.CleanLine(r.Title))
	r.Image = termtext.CleanLine(r.Image)
}

func (d *RecipeDetail) clean() {
	d.Recipe.clean()
	d.SourceURL = termtext.CleanLine(d.SourceURL)
}

func (d RecipeDetail) validate() error {
	if d.ID <= 0 {
		return errMissingID
	}
	if strings.TrimSpace(d.Title) == "" {
		return errMissingTitle
	}
	return nil
}

// compactRecipes drops entries the UI could not act on.
func compactRecipes(items []Recipe) []Recipe {
	out := items[:0]
	for _, r := range items {
		if r.ID <= 0 {
			continue
		}
		r.clean()
		out = append(out, r)
	}
	if len(out) == 0 {
		return []Recipe{}
	}
	return out
}

func compactIngredients(items []Ingredient) []Ingredient {
	out := items[:0]
	for _, in := range items {
		in.Name = strings.TrimSpace(termtext.CleanLine(in.Name))
		in.Image = termtext.CleanLine(in.Image)
		if in.Name == "" {
			continue
		}
		out = append(out, in)
	}
	if len(out) == 0 {
		return []Ingredient{}
	}
	return out
}
