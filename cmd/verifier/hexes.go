package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexmobile/mobile-verifier/hexoracle"
)

func importHexesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import-hexes <file>",
		Short: "import hex assignments, boosts and verified radios",
		Long: `Import a json document with hex assignments, boosted hexes and verified radios.
Existing assignments and boosts of the same hexes are replaced.
The command takes the data dir lock, stop the server before running it or send
SIGHUP to a server configured with oracle.file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			e, err := setup(c, flags, true)
			if err != nil {
				return err
			}
			defer e.Close()
			doc, err := hexoracle.Import(c.Context(), e.db, afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			e.logger.Info("imported hex oracle data",
				zap.String("path", args[0]),
				zap.Int("assignments", len(doc.Assignments)),
				zap.Int("boosts", len(doc.Boosts)),
				zap.Int("verified_radios", len(doc.VerifiedRadios)),
			)
			return nil
		},
	}
}
