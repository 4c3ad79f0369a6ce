// Package tasks implements the client's optimistic task store.
//
// Every mutation changes the local view immediately, returns a *Pending
// handle and issues the network call in the background. When the call
// settles the store either adopts the server's task or restores the
// snapshot taken just before the mutation.
//
// State is an arena (id -> entry) plus the visible order. Each entry keeps a
// log of its in-flight mutations, each with an issue sequence number and a
// pre-mutation snapshot. Requests for one id are sent one at a time in
// issue order, so reconciliation for an id always happens in issue order:
//
//   - a success is adopted only when no newer mutation is in flight for the
//     entry, so the last-issued value is what remains visible;
//   - a failure restores its snapshot of the field it changed, unless a
//     newer mutation of that field is in flight, in which case the snapshot
//     is handed to that mutation instead.
//
// Entries still awaiting creation carry a placeholder id and cannot be
// mutated until the server confirms them (common.ErrEntryPending).
package tasks
