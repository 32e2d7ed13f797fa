// Package cli provides the interactive taskboard terminal client.
//
// It wires configuration, the local token database, the API gateway, the
// query cache and the session into a REPL with two views:
//
//   - login: register, login, exit
//   - main:  projects and tasks (list, show, add, edit, move, remove),
//     profile, logout, exit
//
// When the server reports an expired session the client prints a notice and
// falls back to the login view, unless it is already there.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
