// Package book implements the address book controller shared by the TUI and the CLI.
//
// The [Controller] binds user input to a [services.Lookup] and a [models.AddressStore] and keeps
// the derived view state: the full address list, the filtered list and the record being edited.
//
// # Flows
//
//   - Add: look up the CEP, build a record with a fresh ID, save it, refresh, clear the input.
//   - Delete: remove by ID, refresh.
//   - Edit: open an editing copy of one record, change its display name, save or cancel.
//
// The in-memory lists are never the source of truth. Every mutation is followed by a refresh from the store.
//
// # Asynchronous Lookups
//
// [Controller.Add] performs the lookup inline. Event-loop callers run [Controller.Resolve]
// off the loop and hand the outcome to [Controller.CompleteAdd] when it arrives, so the loop never blocks.
// The controller itself must only be used from one goroutine.
//
// # Notifications
//
// Outcomes users should see are sent to a [Notifier] as transient [Notification] values.
// Failures are recovered here: the caller gets the error back for exit codes, the user gets a notification.
//
// # Filtering
//
// [Filter] combines up to three predicates (display name substring, exact city, exact state) with AND.
// [Cities] and [States] derive the selectable filter values from the full list.
package book
