package presets

import (
	"time"

	"github.com/hexmobile/mobile-verifier/config"
)

func init() {
	register("mainnet", mainnet())
}

func mainnet() config.Config {
	conf := config.DefaultConfig()
	conf.Preset = "mainnet"
	conf.Log.Encoder = "json"
	conf.Verifier.RewardPeriod = 24 * time.Hour
	conf.Verifier.VerificationsPerPeriod = 8
	conf.Verifier.StartAfter = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	conf.Follower.MaxRequestRetries = 20
	conf.Metrics.Address = "0.0.0.0:19090"
	return conf
}
