package presets

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hexmobile/mobile-verifier/config"
)

func init() {
	register("standalone", standalone())
}

// standalone runs short epochs against a local follower and keeps state in the temp dir.
func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.Preset = "standalone"
	conf.DataDir = filepath.Join(os.TempDir(), "mobile-verifier")
	conf.Ingest.Dir = filepath.Join(conf.DataDir, "ingest")
	conf.Output.Dir = filepath.Join(conf.DataDir, "output")

	conf.Log.Level = "debug"
	conf.Verifier.RewardPeriod = time.Hour
	conf.Verifier.VerificationsPerPeriod = 4
	conf.Verifier.StartAfter = time.Now().UTC().Truncate(time.Hour)

	conf.Follower.RequestRetryDelay = 100 * time.Millisecond
	conf.Follower.MaxRequestRetries = 3
	conf.Metrics.Address = "127.0.0.1:9090"
	return conf
}
