// Package ui implements an interactive terminal address book using bubbletea's Elm architecture.
//
// The screen is a single view with tab-cycled focus stops:
//  1. Add form: username, display name and CEP inputs plus a submit button
//  2. Filter bar: display name search, city selector and state selector
//  3. Address table: per-row edit (e) and delete (d)
//
// Editing opens a modal over the table bound to one address until it is saved (enter) or cancelled (esc).
//
// The (view) [Model] delegates every flow to a [book.Controller]. CEP lookups run as a [tea.Cmd]
// through [book.Controller.Resolve] and re-enter the loop as a message, so typing and navigation
// stay responsive while a request is in flight. Controller notifications are drained after each
// operation and shown on a status line until their duration elapses.
package ui
