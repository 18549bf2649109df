// Package controller mediates between user intents and the item store.
//
// A Controller keeps an in-memory copy of the list (the cache) and runs
// every store call on one worker goroutine, in the order intents were
// issued. Intent methods return immediately with a *Pending handle, so a
// UI loop never waits on disk I/O.
//
// Structural changes (Add, Delete, Edit) write and then re-read the whole
// list. ToggleBought writes and then patches the single cached entry in
// place; checking items off is the common case and skips the round trip.
// The cache is never changed before the corresponding write has succeeded.
// A failed write is not retried and leaves the cache as it was.
package controller
