// Package search holds the recipe search state and the rules for changing it.
//
// # Overview
//
// A Session owns the query text, the fetched ingredient list, the recipe
// results, the selected recipe and the user-facing error line. Callers never
// mutate that state directly: they ask the Session for a Ticket (Submit,
// LookupIngredient, Autocomplete, ViewRecipe), run it with Execute (usually
// inside a Bubble Tea command), and read a Snapshot to render.
//
// # Submission Rules
//
// Submit trims the query and rejects it with ErrEmptyQuery when nothing is
// left, splits it on commas and rejects it with ErrTokenTooShort when any
// trimmed token is shorter than MinTokenLength runes. Rejections set the
// matching message and never produce a Ticket, so no request is made.
//
// # Ordering
//
// Every Ticket carries a generation number for its Kind. When a Ticket
// completes it is always released from the pending set, which is what
// drives Snapshot.Loading, but its payload is applied only if no newer
// Ticket of the same Kind was issued in the meantime. Issuing a recipes
// Ticket also retires any in-flight detail Ticket, so a slow detail
// response cannot open over a fresh result list.
//
// # Error Surfaces
//
// Failures of the primary multi-ingredient search set Snapshot.Error.
// Failures of single-ingredient lookups, detail fetches and autocomplete
// only set Snapshot.Notice. All failures are logged.
package search
