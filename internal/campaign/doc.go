/*
Package campaign loads the user's scan specification from an HCL file and
turns it into the inputs of the tree builder: the base configuration, the
parameter grid, the pruning rule and the per-leaf derivation.

The specification is fully resolved here, before any tree is built. Every
choice that was interactive in older tooling (skipping leveling, picking a
bunch) is an explicit attribute of the file; nothing is asked at runtime.
*/
package campaign
