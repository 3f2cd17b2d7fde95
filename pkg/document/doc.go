// Package document defines the unified document model: a tree of Nodes
// rooted at a Document, shared by every backend in pkg/backend and consumed
// read-only by pkg/chunker and pkg/serialize.
//
// # Tree ownership
//
// Children slices are parent-owned with no back-references except the
// Node.parent pointer, which AppendChild sets along with NodeMetadata.Depth
// and Index; nothing in
// this package requires a cyclic graph; a Node is safe to read concurrently
// from multiple goroutines once construction has finished, but construction
// itself (AppendChild) is not safe to call concurrently on the same parent.
//
// # Invariants
//
// Every exported constructor and AppendChild maintains the tree invariants
// spec.md §8 lists: depth equals distance to root, sibling index is the
// node's position among its parent's children, heading levels stay in
// 1..6, and text content is valid, NUL-free UTF-8. Validate walks a tree and
// reports the first invariant violation found, for use by backend tests and
// callers that construct trees by hand.
package document
