// Package actions provides the high-level logic behind the rename-last-commit command.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Backend, Repo, Splog and Config
//   - Actions are stateless; all state lives in the repository
//   - Actions handle user interaction through a Prompter backed by the tui package
package actions
