package release

// Reporter renders operator-facing progress lines.
type Reporter interface {
	Progress(format string, arguments ...any)
	Warning(format string, arguments ...any)
}

type silentReporter struct{}

func (silentReporter) Progress(string, ...any) {}

func (silentReporter) Warning(string, ...any) {}

func resolveReporter(reporter Reporter) Reporter {
	if reporter == nil {
		return silentReporter{}
	}
	return reporter
}
