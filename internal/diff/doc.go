// Package diff computes minimal line-level edit scripts between two line
// sequences using Myers' shortest-edit-script algorithm.
//
// A Script lists deletions (indexed into the source sequence, in
// descending order) followed by insertions (indexed into the target
// sequence, in ascending order). Applying the edits in script order with
// Apply transforms the source into the target exactly.
//
// Compute is deterministic: identical inputs always produce the identical
// script, so downstream partial-update logic is reproducible.
package diff
