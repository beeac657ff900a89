// Package runtime provides the execution context for githelper actions.
//
// It replaces global identity variables with an explicit structure: the loaded
// configuration plus the collaborators every action needs (git client, logger,
// prompter, command runner, viewer launcher, key manager and the remote repair
// policy). The CLI builds one Context per process and hands it to each action.
package runtime
