/*
Package grid expands declarative axis specifications into an ordered
cartesian product of parameter points.

Expansion is deterministic: axes iterate in declaration order, the product
is row-major, and numeric ranges are rounded to a fixed number of decimals
at construction time so that regenerating a campaign from the same spec
yields byte-identical values. Pruning predicates filter points during
iteration without disturbing the order or indices of the kept points.
*/
package grid
