package shares

import "github.com/hexmobile/mobile-verifier/metrics"

var malformedFiles = metrics.NewCounter(
	"malformed_files_total",
	"shares",
	"number of skipped heartbeat files",
	[]string{},
).WithLabelValues()
