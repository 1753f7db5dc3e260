// Package app wires the campaign components together behind the four CLI
// operations: generate, mark, status and watch. It owns the logger
// configuration and carries it to every component through the context.
package app
