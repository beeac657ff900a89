// Package actions provides the operations behind every menu entry and subcommand.
//
// Key patterns:
//   - Actions accept a context.Context and the runtime.Context holding configuration,
//     the git client, Splog and the prompter
//   - Every action that changes the repository or its remote first checks that the
//     folder is a repository and runs the remote repair preflight
//   - Command output is shown verbatim; a failing git command is returned as an
//     error carrying that output and never ends the menu loop
package actions
