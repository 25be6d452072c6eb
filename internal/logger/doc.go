// Package logger wraps zap to give every archiver component:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and switching for the --log-level flag,
//   - context-first convenience functions (Infof, ErrorKV, etc.).
//
// Services receive a context and pull the logger out of it, so a component
// name or key-value pairs attached once follow every message below it.
package logger
