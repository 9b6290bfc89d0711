// Package logger provides leveled logging for shroud commands.
//
// Output always goes to stderr: during an editing session the child process
// owns the terminal's stdout, so diagnostics must never interleave with it.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()       // Shown with --verbose or --debug
//	Logger.Debugf()      // Shown only with --debug
//	Logger.Warnf()       // Shown with --verbose or --debug
//	Logger.WarnfAlways() // Always shown (critical warnings)
//	Logger.Errorf()      // Always shown
//
// Commands create a logger in their PersistentPreRun and pass it to internal
// components by value.
package logger
