package stats

import "time"

// SetAnalyzerTimeNow pins the analyzer clock in tests.
func SetAnalyzerTimeNow(a *Analyzer, timeNow func() time.Time) {
	a.timeNow = timeNow
}
