// Package cli provides the interactive task tracker command-line client.
//
// It wires configuration, the local SQLite token store, the REST client,
// the session and the optimistic task store behind a small REPL. Typical
// flow: restore a saved session (silently falling back to signed out),
// start a background connectivity watcher, then execute user commands.
//
// Task commands return as soon as the local view changes; when the server
// later refuses a change the view is rolled back and a notice is printed.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
