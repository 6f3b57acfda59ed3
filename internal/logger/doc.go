// Package logger wraps zap with:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the --log-level flag,
//   - leveled convenience functions (Info, WarnKV, etc.).
//
// The installer keeps stdout free for nothing but the final result, so every
// diagnostic line ends up on stderr next to the progress indicator.
package logger
