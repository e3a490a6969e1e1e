// Package app provides the orchestration layer for the RecipeMama application.
//
// # Overview
//
// This package wires together configuration, logging, the recipe API client,
// the session controller and the UI. It is the composition root: every
// dependency is built here and handed to the next.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          config.toml + RECIPEMAMA_API_URL
//	       ├─────> logging.Setup()        Session log file
//	       ├─────> prefs.Load()           Theme and comment author
//	       ├─────> recipeapi.NewClient()  HTTP client (+ circuit breaker)
//	       ├─────> controller.New()       Session state, seeded comments
//	       ├─────> ctrl.LoadSummaries()   First page, in the background
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable, unparseable or invalid
//   - Log file cannot be created
//   - API base URL cannot be parsed
//
// Recoverable errors (logged, session continues):
//   - Prefs file unreadable: defaults are used
//   - Any fetch failure: the controller keeps its previous state
//
// The API being unreachable is not fatal. The listing shows an empty state
// and the user can reload with r.
//
// # Shutdown
//
// When the UI exits, Run cancels the session context so in-flight requests
// abort, then waits for the controller's fetch goroutines before closing the
// log file.
package app
