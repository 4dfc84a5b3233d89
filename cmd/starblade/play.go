package main

import (
	"github.com/spf13/cobra"

	"github.com/samdwyer/starblade/internal/game"
)

// playLogFile receives logs while the terminal UI owns the screen.
const playLogFile = "starblade.log"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start exploring Rondrajs Mark in the terminal.

Controls:
  Arrows     - Move the party
  R          - Rest for two hours
  C          - Camp for the night
  1/A        - Attack the selected enemy
  2/S        - Cast a spell at the selected enemy
  3/D        - Defend
  Tab        - Select the next enemy
  Q/Esc      - Quit

Logs go to starblade.log unless logging.file is configured.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := bootstrap(ctx, cmd, playLogFile)
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	g, err := game.New(game.ConfigFrom(rt.cfg), rt.logger)
	if err != nil {
		return err
	}
	return g.Run(ctx)
}
