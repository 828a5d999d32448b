// Package contacts holds the contact list domain types and the state model
// behind the contact list view.
//
// # State
//
// A List tracks the contact sequence supplied by its owner, the current user
// loaded from storage, the unread-count map fetched from the message service,
// and which contact is selected. A List moves from Uninitialized to Loaded on
// the first applied refresh and to Closed when its owner goes away.
//
// # Ordering
//
// Refreshes and mark-read requests complete in any order. Every refresh is
// issued a token; a result whose token is older than the most recently issued
// one is dropped. Selecting a contact zeroes its count locally and leaves a
// read mark, so a refresh that was already in flight cannot bring the cleared
// count back.
//
// Lists are not safe for concurrent use. All mutation is expected to happen
// on the UI event loop; network work reports back through RefreshResult.
package contacts
