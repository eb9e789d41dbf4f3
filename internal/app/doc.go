// Package app is the composition root for sous.
//
// # Overview
//
// Bootstrap loads the configuration, the UI preferences and the logger,
// builds the recipe API client and wraps it in a search.Session. Every front
// end drives that one Session: Run hands it to the Bubble Tea UI, and the
// one-shot Find, ShowRecipe and Ingredients methods behind the CLI
// subcommands use the same validation and error messages.
//
// # Startup Order
//
//  1. config.Load (file, then SOUS_API_KEY / SOUS_API_BASE)
//  2. Config.Validate: a missing API key stops here
//  3. prefs.Load (never fails)
//  4. logging.NewOrNop: a logger that cannot open its file degrades to a
//     no-op logger and a one-line warning
//  5. spoonacular.NewClient with the configured request timeout
//  6. search.New
//
// # Rendering Mode
//
// Rich text is on when --rich is given, otherwise when the saved preference
// says so, otherwise when the config file sets rich_text.
package app
