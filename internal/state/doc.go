// Package state shares the result of catalogue loads between the background
// loader and the UI.
//
// The loader (and the file watcher, when enabled) calls Store.Update with each
// outcome; the UI polls Store.Snapshot on a tick and compares Generation to
// decide whether the item list changed.
//
// Update semantics:
//
//	store.Update(items, nil)  // items replaced, LastError cleared
//	store.Update(nil, err)    // items kept (empty on the first load), LastError = err
//
// Either call marks the snapshot Loaded. Snapshot returns copies, so callers
// may modify what they get back. The zero Store is ready to use.
package state
