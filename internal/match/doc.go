// Package match finds the closest known name to a misspelled one. It backs
// the "did you mean" hints attached to missing child paths and unknown
// fixture type names.
//
// Key functions:
//   - Normalize: folds a name for fuzzy comparison
//   - Distance: edit distance between two names
//   - Closest: picks the best candidate above a similarity threshold
package match
