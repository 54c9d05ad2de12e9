// Package logging builds the slog loggers used by the scanner and its CLI.
//
// Two formats are supported: "console", a compact single line format meant
// for terminals, and "json" for log shippers. [Nop] returns a logger that
// discards everything, which is what the scanner uses when the caller does
// not provide one.
package logging
