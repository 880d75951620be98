package logger

// Error chain and attribute formatters, reached from the external test package.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
	FormatAttr          = formatAttr
)
