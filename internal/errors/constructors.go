package errors

// Convenience functions for common error patterns

// Config errors

func ConfigConflict(found []string, allowed []string) *BookError {
	return New(CategoryConfig, SeverityFatal,
		"cannot load config, the project root must have exactly 1 config file").
		WithContext("found", found).
		WithContext("supported", allowed)
}

func ConfigLoadFailed(path string, cause error) *BookError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "failed to load config file").
		WithContext("path", path)
}

func ClassificationFailed(folder string, reason string) *BookError {
	return New(CategoryConfig, SeverityFatal, "source folder classification failed").
		WithContext("folder", folder).
		WithContext("reason", reason)
}

// Identity errors

func IdentityWriteFailed(srcFile string, cause error) *BookError {
	return Wrap(cause, CategoryIdentity, SeverityFatal, "failed to write identity into source file").
		WithContext("file", srcFile)
}

func IdentityProbeFailed(srcFile string, cause error) *BookError {
	return Wrap(cause, CategoryIdentity, SeverityFatal, "failed to probe source file metadata").
		WithContext("file", srcFile)
}

// TOC errors

func TOCWriteFailed(cause error) *BookError {
	return Wrap(cause, CategoryTOC, SeverityFatal, "failed to write table of contents")
}

// Render errors

func RenderFailed(srcFile string, cause error) *BookError {
	return Wrap(cause, CategoryRender, SeverityError, "failed to render file").
		WithContext("file", srcFile)
}

// Filesystem errors

func FSOpFailed(op, path string, cause error) *BookError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", op).
		WithContext("path", path)
}
