// Package vtree opens a dynamic value for browsing, searching and in place
// editing.
//
// A Session binds a value to a lazy tree.Model, a search.Engine and a dirty
// flag. Views of the value go through rows and addresses. Edits go through
// Mutate, which applies an edit.Op, invalidates the affected rows and marks
// the session dirty. Sessions are not safe for concurrent use; a Workspace
// wraps each session in a Document with a readers/writer lock.
package vtree
