// Package grid is the in-memory table model: a comma/newline codec and the
// cell, row-append and row-delete operations over it.
//
// Every operation returns a new Grid and leaves its input untouched, so a
// caller can keep the previous value as a snapshot.
package grid
