// Package runtime provides the execution context for gitwrap commands.
//
// It encapsulates shared dependencies needed by every command: the opened
// repository, the logger, the output formatter and the loaded configuration.
package runtime
