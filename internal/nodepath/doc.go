/*
Package nodepath provides the canonical addressing scheme for nodes in a
campaign tree: a slash-separated chain of child keys from the root,
e.g. `base_collider/scan_0003`.

A node's path doubles as its on-disk location relative to the campaign
root, so the same value addresses both the in-memory tree and the
materialized directory hierarchy. This package centralizes parsing and
validation so that no other component has to reason about separators or
hostile segments.
*/
package nodepath
