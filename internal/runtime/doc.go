// Package runtime provides a context type that holds the repository, backend and logger
// for use throughout a single command invocation. This avoids passing multiple parameters.
package runtime
