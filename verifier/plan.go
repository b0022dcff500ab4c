package verifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/hexmobile/mobile-verifier/common/types"
)

// ErrOutOfRange is returned when the computed sleep duration is negative.
var ErrOutOfRange = errors.New("sleep duration out of range")

// action is the work of a single loop iteration.
type action struct {
	verify *types.Epoch
	reward *types.Epoch
	sleep  time.Duration
}

// plan decides what the scheduler does at now. It depends only on its arguments, so a
// restarted scheduler takes the same decision as the one that persisted the checkpoints.
func plan(now time.Time, cp Checkpoints, verificationPeriod time.Duration) (action, error) {
	var act action
	sinceVerify := now.Sub(cp.LastVerified)
	rewardDue := !now.Before(cp.NextRewarded)

	// verification must run before a reward to close the gap up to the reward boundary
	if sinceVerify >= verificationPeriod || rewardDue {
		duration := max(min(sinceVerify, verificationPeriod), 0)
		end := cp.LastVerified.Add(duration)
		if end.After(cp.NextRewarded) {
			end = cp.NextRewarded
		}
		epoch := types.NewEpoch(cp.LastVerified, end)
		act.verify = &epoch
		if sinceVerify-duration > verificationPeriod {
			act.sleep = 0
		} else {
			act.sleep = verificationPeriod
		}
	} else {
		act.sleep = verificationPeriod - sinceVerify
	}

	if rewardDue {
		epoch := types.NewEpoch(cp.LastRewarded, cp.NextRewarded)
		act.reward = &epoch
	} else if !now.Add(act.sleep).Before(cp.NextRewarded) {
		// wake up exactly at the reward boundary
		act.sleep = cp.NextRewarded.Sub(now)
	}

	if act.sleep < 0 {
		return action{}, fmt.Errorf("%w: %v", ErrOutOfRange, act.sleep)
	}
	return act, nil
}
