// Package logging assembles the slog loggers used by the texmorph CLI.
//
// It owns the console and JSON handlers and the level plumbing. Console output
// is coloured only when the destination is a terminal. The root texmorph
// package never imports this package: it accepts any *slog.Logger.
package logging
