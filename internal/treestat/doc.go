// Package treestat counts files and sums file sizes within a directory tree.
//
// It walks directory trees using fastwalk with a single worker, filters
// entries by plain name suffix, and records every path it had to skip
// because of a permission or not-found failure so callers can tell a
// complete total from a partial one.
package treestat
