// Package services implements the driving port interfaces.
// Services contain the core business logic: the query resolution
// pipeline (extraction, structural, fuzzy, full-text and pattern
// matching, ranking) and the catalog operations.
//
// Services are pure Go; the only third-party dependency is the
// edit-distance computation used for fuzzy matching.
package services
