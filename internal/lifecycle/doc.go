/*
Package lifecycle tracks the per-node execution state of a materialized
campaign: PENDING when a node's directory is created, STARTED when a worker
picks it up, COMPLETED or FAILED when the worker finishes.

Each node's record is one JSON file inside the node's own directory, so the
unit of mutual exclusion is the node and workers on different nodes never
contend. Transitions are compare-and-set: the caller states the record it
expects, a per-node lock file serializes racing writers, and the new record
lands via an atomic rename. A rejected transition reports both the
attempted and the actual state; it is the caller's job to decide whether to
retry, skip or alert.
*/
package lifecycle
