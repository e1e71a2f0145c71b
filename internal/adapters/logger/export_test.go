package logger

// ErrorReport exposes the pretty error report for white-box testing.
func ErrorReport(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
