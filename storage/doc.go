// Package storage defines the persistence interfaces for parsed
// transcripts. The cache lets a server restart serve immediately from
// the last parsed state while the directory scan runs in the
// background. See the badger subpackage for the production
// implementation.
package storage
