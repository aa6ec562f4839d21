// Package command resolves palette queries against a tree of commands.
//
// Allowed here:
// - the command tree, its depth bookkeeping and alias lookup
// - query resolution into suggestions and the execute/requery flow
//
// Not allowed here:
// - rendering of suggestions or ownership of the input box (see Host)
// - concrete command behavior (plugins attach it through Suggest and Run)
package command
