// Package spoonacular provides an HTTP client for the Spoonacular recipe API.
//
// # Overview
//
// sous only needs three read-only endpoints: ingredient autocomplete,
// recipes by ingredient and recipe information. The client handles URL
// construction, API key injection, JSON decoding and a light shape check
// on the responses.
//
// # Architecture
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the API payloads
//
// # Client Usage
//
//	client, err := spoonacular.NewClient(cfg.APIBase, cfg.APIKey,
//		spoonacular.WithTimeout(cfg.RequestTimeout))
//	if err != nil {
//		return fmt.Errorf("init recipe client: %w", err)
//	}
//
//	recipes, err := client.FindByIngredients(ctx, []string{"egg", "rice"}, 0)
//
// # API Endpoints
//
//	GET /food/ingredients/autocomplete?query=gar&number=10
//	GET /recipes/findByIngredients?ingredients=egg,rice&number=10
//	GET /recipes/{id}/information
//
// Every request carries the apiKey query parameter. Because the key rides
// in the query string, errors returned by the client name the request path
// only and transport errors are unwrapped from *url.Error before being
// reported.
//
// # Response Shapes
//
// Recipe list entries without an id and ingredient entries without a name
// are dropped. A recipe information response without an id or title is
// reported as a decode error. Non-2xx responses surface as *StatusError.
//
// # Testing
//
// RecipeFetcher is the interface the rest of sous depends on, so tests can
// substitute a fake without an HTTP server.
package spoonacular
