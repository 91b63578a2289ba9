/*
Package arena provides an append-only tree (or forest) store addressed by integer ids.

Nodes are kept in a single growable slice. Parent and child relationships are plain
NodeID values into that slice, so the structure has no owning pointers and no cycles:
a parent must already exist when a child is added.

# Constraints

  - Ids are dense, start at 0 and are never reused or reassigned.
  - Children keep insertion order and are never reordered or removed.
  - Values are not unique. Every value-keyed lookup is a linear scan in id order and
    resolves to the first match.
  - The Arena is not safe for concurrent mutation. Once built, it can be read from any
    number of goroutines.
*/
package arena
