package filesink

import "github.com/hexmobile/mobile-verifier/metrics"

const subsystem = "filesink"

var (
	writtenRecords = metrics.NewCounter(
		"records_total",
		subsystem,
		"number of records persisted by a sink",
		[]string{"prefix"},
	)
	writeErrors = metrics.NewCounter(
		"errors_total",
		subsystem,
		"number of messages a sink failed to persist",
		[]string{"prefix"},
	)
)
