package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RecipeFetcher defines the recipe API calls sous makes.
// This interface is implemented by *Client and can be used for testing.
type RecipeFetcher interface {
	AutocompleteIngredients(ctx context.Context, query string, number int) ([]Ingredient, error)
	FindByIngredients(ctx context.Context, ingredients []string, number int) ([]Recipe, error)
	RecipeInformation(ctx context.Context, id int) (*RecipeDetail, error)
}

// Ensure Client implements RecipeFetcher at compile time.
var _ RecipeFetcher = (*Client)(nil)

// ErrMissingAPIKey is returned by NewClient when no key is configured.
var ErrMissingAPIKey = errors.New("spoonacular api key is not configured")

// Client talks to the Spoonacular HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL        = "https://api.spoonacular.com"
	defaultUserAgent      = "sous/0.1"
	DefaultRequestTimeout = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client. The client's timeout is
// used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for baseURL authenticating with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		apiKey:  key,
		http: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AutocompleteIngredients returns up to number ingredient suggestions for query.
func (c *Client) AutocompleteIngredients(ctx context.Context, query string, number int) ([]Ingredient, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set("query", q)
	}
	if number > 0 {
		values.Set("number", strconv.Itoa(number))
	}
	var payload []Ingredient
	if err := c.get(ctx, "/food/ingredients/autocomplete", values, &payload); err != nil {
		return nil, err
	}
	return compactIngredients(payload), nil
}

// FindByIngredients returns recipes that use the given ingredients. A
// non-positive number leaves the result cap to the API.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]Recipe, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("at least one ingredient required")
	}
	values := url.Values{}
	values.Set("ingredients", strings.Join(ingredients, ","))
	if number > 0 {
		values.Set("number", strconv.Itoa(number))
	}
	var payload []Recipe
	if err := c.get(ctx, "/recipes/findByIngredients", values, &payload); err != nil {
		return nil, err
	}
	return compactRecipes(payload), nil
}

// RecipeInformation retrieves the full detail for one recipe.
func (c *Client) RecipeInformation(ctx context.Context, id int) (*RecipeDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("recipe id required")
	}
	var payload RecipeDetail
	path := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	payload.clean()
	if err := payload.validate(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	if values == nil {
		values = url.Values{}
	}
	values.Set("apiKey", c.apiKey)
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	return c.doURL(ctx, http.MethodGet, rel, dest)
}

// doURL never puts rel's query string into errors; it carries the api key.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request %s: %w", rel.Path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request %s: %w", rel.Path, redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// redact strips the request URL from transport errors, which otherwise
// echo the full query string.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
