// Package ui provides the RecipeMama terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program that observes a controller.Controller. It
// never holds recipe state of its own: every key press maps to a controller
// operation, and every controller change arrives as a stateChangedMsg after
// which the model re-reads a Snapshot.
//
// The bridge is a one-slot channel fed by Controller.Subscribe. Observers run
// on whichever goroutine changed the state, so they must not block and must
// not call back into the program; the channel send is non-blocking and a
// waitForChange command turns it into a message on the Bubble Tea loop.
//
// # Package Structure
//
//   - app.go: Model, Update loop, controller bridge and Run
//   - header.go: status bar, command bar and the titled box frame
//   - listing.go: category chips, search line and recipe rows
//   - detail.go: recipe page, related strip and comments
//   - input.go: search and comment text inputs
//   - logs.go: session log view backed by logtail
//   - log_format.go: readable rendering of logrus text entries
//   - help.go: key binding overlay
//   - keys.go, theme.go, style_helpers.go, strings.go, layout.go: support
//
// # Screens
//
// The browse screen follows the controller view state: Listing shows the
// filtered collection, Detail(id) shows the selected recipe. The Logs screen
// sits beside them and is toggled with l.
//
// # Themes
//
// Three themes are available (Nightfox, Kanagawa, Slate). T cycles them and
// the choice is saved to the preferences file.
package ui
