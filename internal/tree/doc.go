/*
Package tree assembles the multi-generation campaign tree: one root, a
single first-generation node carrying the shared base configuration, and
one leaf per kept scan point.

Nodes live in an arena keyed by their nodepath.Path, so parent/child
relations are plain path lookups with no pointer cycles. A node's
configuration is resolved once, at insertion time, as the deep merge of
its ancestor chain with its own overrides; nothing is resolved lazily and
ancestors are never mutated by descendants.
*/
package tree
