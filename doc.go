// Package pagedb implements a single-file, page-based persistent object
// store: a typed schema registry built on top of a hand-managed paged heap.
//
// A backing file holds a superblock, a sequence of fixed-size pages, and two
// intrusive doubly-linked page lists (a free-page list and a class list).
// Schemas ("classes") are registered against the database and identified by
// their canonical textual form; instances of those schemas ("nodes") are the
// concern of the typesystem package and are not modeled here.
package pagedb
