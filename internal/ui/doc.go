// Package ui provides the Bubble Tea terminal interface for sous.
//
// # Architecture Overview
//
// Model is the root tea.Model. It holds view state only (focus, cursors,
// theme, the open modal); search state lives in a search.Session and is
// copied into a Snapshot after every change. Network calls never run in
// Update: a search.Ticket is wrapped in a tea.Cmd, executed on Bubble Tea's
// command goroutine, and reported back as an outcome message.
//
// # Package Structure
//
//   - app.go: Model, message routing and the Run entry point
//   - navbar.go: brand links and the compact-width menu toggle
//   - search.go: query input, ingredient and recipe panes
//   - modal.go: the Modal interface and the recipe detail modal
//   - logs.go: the Diagnostics view over the log tail
//   - header.go, help.go: header, command bar, help and about screens
//   - keys.go, layout.go, theme.go, style_helpers.go: bindings, sizes, colors
//
// # Event Flow
//
//  1. Typing updates the session query and schedules a debounce tick
//  2. A debounce tick that still matches the latest edit asks the session
//     for an autocomplete Ticket
//  3. enter in the input submits the multi-ingredient search; enter on an
//     ingredient looks up that ingredient alone; enter on a recipe fetches
//     its details
//  4. Outcome messages refresh the snapshot; an applied detail outcome opens
//     the modal
//  5. Closing the modal clears the session's selected recipe
//
// # Key Bindings
//
// While the query input has focus it receives all printable keys; tab,
// esc, enter, ctrl+o and F1-F4 still work. With the input left:
//
//   - 1-4: Search, Diagnostics, Help, About
//   - m: toggle the nav menu on narrow terminals
//   - j/k, g/G: move in the focused list
//   - /: back to the query input
//   - T: cycle theme
//   - r (in a recipe): plain or rich text
//   - R (in Diagnostics): reload the log tail
//   - q or ctrl+c: quit
package ui
