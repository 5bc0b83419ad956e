// Package logfields defines canonical log field name constants so attribute
// keys do not drift across packages.
package logfields

import "log/slog"

const (
	KeyBuildID    = "build_id"
	KeyPage       = "page"
	KeyPost       = "post"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyAddr       = "addr"
	KeyOutput     = "output"
	KeySource     = "source"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func Post(slug string) slog.Attr      { return slog.String(KeyPost, slug) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func Source(dir string) slog.Attr     { return slog.String(KeySource, dir) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
