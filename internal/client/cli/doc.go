// Package cli provides the interactive task manager command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// The bearer token obtained at login lives only in process memory and is
// dropped on logout, on exit, or when the server rejects it.
//
// Key features:
//   - register / login / logout (password read without echo)
//   - add, list, update and delete tasks
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
