package argh

import "log/slog"

// DeprecationNotice describes one use of a legacy name: what kind of thing
// it was, the name that was used, and its replacement.
type DeprecationNotice struct {
	What string
	Old  string
	New  string
}

func logNotice(n DeprecationNotice) {
	slog.Warn("deprecated usage",
		slog.String("what", n.What),
		slog.String("old", n.Old),
		slog.String("new", n.New),
	)
}

// deprecationHandler receives every notice. The default logs a structured
// warning.
var deprecationHandler = logNotice

// SetDeprecationHandler replaces the handler deprecation notices are sent
// to. A nil handler restores the default.
func SetDeprecationHandler(h func(DeprecationNotice)) {
	if h == nil {
		h = logNotice
	}
	deprecationHandler = h
}

func deprecate(what, old, new string) {
	deprecationHandler(DeprecationNotice{What: what, Old: old, New: new})
}
