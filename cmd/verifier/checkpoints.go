package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/hexmobile/mobile-verifier/verifier"
)

type checkpointsView struct {
	LastVerified time.Time `json:"last_verified_end_time"`
	LastRewarded time.Time `json:"last_rewarded_end_time"`
	NextRewarded time.Time `json:"next_rewarded_end_time"`
}

func checkpointsCmd(flags *rootFlags) *cobra.Command {
	var output string
	c := &cobra.Command{
		Use:   "checkpoints",
		Short: "print persisted checkpoints of the verifier",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			e, err := setup(c, flags, false)
			if err != nil {
				return err
			}
			defer e.Close()
			cp, err := verifier.ReadCheckpoints(e.db)
			if err != nil {
				return fmt.Errorf("read checkpoints: %w", err)
			}
			data, err := json.MarshalIndent(checkpointsView{
				LastVerified: cp.LastVerified,
				LastRewarded: cp.LastRewarded,
				NextRewarded: cp.NextRewarded,
			}, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" {
				_, err = c.OutOrStdout().Write(data)
				return err
			}
			if err := atomic.WriteFile(output, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "write checkpoints to the file instead of stdout")
	return c
}
