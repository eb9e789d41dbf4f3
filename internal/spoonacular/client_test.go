package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

const testKey = "test-secret-key"

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.spoonacular.com" {
		t.Fatalf("default url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("recipes.local:8080")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "recipes.local:8080" {
		t.Fatalf("bare host url = %q, want https://recipes.local:8080", u.String())
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "   ")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewClient error = %v, want ErrMissingAPIKey", err)
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	queries := map[string]url.Values{}
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		queries[r.URL.Path] = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/food/ingredients/autocomplete":
			_ = json.NewEncoder(w).Encode([]Ingredient{{ID: 1, Name: "garlic"}, {Name: ""}, {ID: 2, Name: "garlic powder"}})
		case "/recipes/findByIngredients":
			_ = json.NewEncoder(w).Encode([]Recipe{{ID: 7, Title: "Egg Fried Rice"}, {Title: "no id"}})
		case "/recipes/7/information":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":             7,
				"title":          "Egg Fried Rice",
				"image":          "https://img.example/7.jpg",
				"instructions":   "<ol><li>Fry.</li></ol>",
				"readyInMinutes": 20,
				"servings":       2,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, testKey)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	ingredients, err := c.AutocompleteIngredients(ctx, " gar ", 10)
	if err != nil {
		t.Fatalf("AutocompleteIngredients returned error: %v", err)
	}
	if len(ingredients) != 2 || ingredients[1].Name != "garlic powder" {
		t.Fatalf("AutocompleteIngredients = %#v, want 2 named entries", ingredients)
	}
	q := queries["/food/ingredients/autocomplete"]
	if q.Get("query") != "gar" || q.Get("number") != "10" || q.Get("apiKey") != testKey {
		t.Fatalf("autocomplete query = %v, want query=gar number=10 apiKey set", q)
	}

	recipes, err := c.FindByIngredients(ctx, []string{"egg", "rice"}, 0)
	if err != nil {
		t.Fatalf("FindByIngredients returned error: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != 7 {
		t.Fatalf("FindByIngredients = %#v, want 1 recipe id=7", recipes)
	}
	q = queries["/recipes/findByIngredients"]
	if q.Get("ingredients") != "egg,rice" || q.Has("number") || q.Get("apiKey") != testKey {
		t.Fatalf("findByIngredients query = %v, want ingredients=egg,rice without number", q)
	}

	detail, err := c.RecipeInformation(ctx, 7)
	if err != nil {
		t.Fatalf("RecipeInformation returned error: %v", err)
	}
	if detail.Title != "Egg Fried Rice" || detail.Servings != 2 || !strings.Contains(detail.Instructions, "Fry.") {
		t.Fatalf("RecipeInformation = %#v, want decoded detail", detail)
	}
	if queries["/recipes/7/information"].Get("apiKey") != testKey {
		t.Fatalf("information query missing apiKey")
	}

	if !strings.HasPrefix(gotUserAgent, "sous/") {
		t.Fatalf("User-Agent = %q, want sous/*", gotUserAgent)
	}
}

func TestClient_FindByIngredientsEmptyResultIsEmptySlice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, testKey)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	recipes, err := c.FindByIngredients(context.Background(), []string{"egg"}, 10)
	if err != nil {
		t.Fatalf("FindByIngredients returned error: %v", err)
	}
	if recipes == nil || len(recipes) != 0 {
		t.Fatalf("FindByIngredients = %#v, want empty non-nil slice", recipes)
	}
}

func TestClient_StripsTerminalEscapesFromTextFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/findByIngredients":
			_, _ = w.Write([]byte(`[{"id":1,"title":"\u001b]0;owned\u0007Egg\u001b[2J Rice"},{"id":2,"title":"\u001b[31m"}]`))
		case "/food/ingredients/autocomplete":
			_, _ = w.Write([]byte(`[{"id":1,"name":"gar\u001b[5mlic"},{"id":2,"name":"\u0007"}]`))
		case "/recipes/3/information":
			_, _ = w.Write([]byte(`{"id":3,"title":"Soup\u001b]52;c;aGk=\u0007","sourceUrl":"https://x.test/\u001b[8m"}`))
		case "/recipes/4/information":
			_, _ = w.Write([]byte(`{"id":4,"title":"\u001b[2J"}`))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, testKey)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	recipes, err := c.FindByIngredients(ctx, []string{"egg"}, 0)
	if err != nil {
		t.Fatalf("FindByIngredients returned error: %v", err)
	}
	if len(recipes) != 2 || recipes[0].Title != "Egg Rice" || recipes[1].Title != "" {
		t.Fatalf("FindByIngredients = %#v, want cleaned titles", recipes)
	}

	items, err := c.AutocompleteIngredients(ctx, "gar", 10)
	if err != nil {
		t.Fatalf("AutocompleteIngredients returned error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "garlic" {
		t.Fatalf("AutocompleteIngredients = %#v, want only garlic", items)
	}

	detail, err := c.RecipeInformation(ctx, 3)
	if err != nil {
		t.Fatalf("RecipeInformation returned error: %v", err)
	}
	if detail.Title != "Soup" || detail.SourceURL != "https://x.test/" {
		t.Fatalf("RecipeInformation = %+v, want cleaned title and source", detail)
	}

	if _, err := c.RecipeInformation(ctx, 4); !errors.Is(err, errMissingTitle) {
		t.Fatalf("RecipeInformation(escape-only title) error = %v, want errMissingTitle", err)
	}
}

func TestClient_ArgumentChecks(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", testKey)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FindByIngredients(context.Background(), nil, 0); err == nil {
		t.Fatalf("FindByIngredients(nil) returned nil error, want error")
	}
	if _, err := c.RecipeInformation(context.Background(), 0); err == nil {
		t.Fatalf("RecipeInformation(0) returned nil error, want error")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/findByIngredients":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/food/ingredients/autocomplete":
			http.Error(w, "quota", http.StatusPaymentRequired)
		case "/recipes/3/information":
			_, _ = w.Write([]byte(`{"id": 3, "title": "  "}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, testKey)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FindByIngredients(context.Background(), []string{"egg"}, 0)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FindByIngredients error = %v, want decode response error", err)
	}

	_, err = c.AutocompleteIngredients(context.Background(), "egg", 5)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusPaymentRequired {
		t.Fatalf("AutocompleteIngredients error = %v, want StatusError 402", err)
	}
	if strings.Contains(err.Error(), testKey) {
		t.Fatalf("status error %q leaks the api key", err.Error())
	}

	_, err = c.RecipeInformation(context.Background(), 3)
	if !errors.Is(err, errMissingTitle) {
		t.Fatalf("RecipeInformation error = %v, want missing title", err)
	}
}

func TestClient_TransportErrorDoesNotLeakKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c, err := NewClient(base, testKey, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FindByIngredients(context.Background(), []string{"egg"}, 0)
	if err == nil {
		t.Fatalf("FindByIngredients returned nil error against closed server")
	}
	if strings.Contains(err.Error(), testKey) {
		t.Fatalf("transport error %q leaks the api key", err.Error())
	}
	if !strings.Contains(err.Error(), "/recipes/findByIngredients") {
		t.Fatalf("transport error %q, want it to name the path", err.Error())
	}
}
