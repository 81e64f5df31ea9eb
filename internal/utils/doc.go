// Package utils provides small helpers shared by the command and its actions:
// terminal detection, stdin handling and commit message validation.
package utils
