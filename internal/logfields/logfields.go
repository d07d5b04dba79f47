package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile    = "file"
	KeyFolder  = "folder"
	KeySection = "section"
	KeyUUID    = "uuid"
	KeyStage   = "stage"
	KeyCount   = "count"
	KeyPath    = "path"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(f string) slog.Attr       { return slog.String(KeyFile, f) }
func Folder(f string) slog.Attr     { return slog.String(KeyFolder, f) }
func Section(s string) slog.Attr    { return slog.String(KeySection, s) }
func UUID(id string) slog.Attr      { return slog.String(KeyUUID, id) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
