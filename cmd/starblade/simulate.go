package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/expedition"
	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/world"
)

var (
	flagTerrain string
	flagBattles int
	flagJournal bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autopilot battles",
	Long: `Fight battles on a terrain with every hero on autopilot and print a
summary per battle. The party camps between battles.

Examples:
  starblade simulate
  starblade simulate --terrain ruin --battles 50 --seed 7
  starblade simulate --terrain forest --journal`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagTerrain, "terrain", "plain", "Terrain to spawn enemies from")
	simulateCmd.Flags().IntVar(&flagBattles, "battles", 10, "Number of battles to fight")
	simulateCmd.Flags().BoolVar(&flagJournal, "journal", false, "Print each battle's narration")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := bootstrap(ctx, cmd, "")
	if err != nil {
		return err
	}
	defer rt.close(ctx)

	return simulate(ctx, cmd.OutOrStdout(), simulation{
		Terrain: flagTerrain,
		Battles: flagBattles,
		Journal: flagJournal,
		Seed:    rt.cfg.Game.Seed,
		Logger:  rt.logger,
	})
}

// simulation configures a headless run.
type simulation struct {
	Terrain string
	Battles int
	Journal bool
	Seed    int64
	Logger  *zap.Logger
}

// battleSummary is the result of one autopilot battle.
type battleSummary struct {
	Enemies     string
	Outcome     combat.Outcome
	Rounds      int
	Actions     int
	PartyHealth int
	PartyMax    int
	Narration   []string
}

func (b battleSummary) String() string {
	return fmt.Sprintf("%-20s %-8s rounds %2d  hero actions %3d  party LE %d/%d",
		b.Enemies, b.Outcome, b.Rounds, b.Actions, b.PartyHealth, b.PartyMax)
}

// simulate fights sim.Battles battles on one expedition and writes a line
// per battle plus totals to out.
func simulate(ctx context.Context, out io.Writer, sim simulation) error {
	if sim.Battles <= 0 {
		return fmt.Errorf("battles must be positive, got %d", sim.Battles)
	}
	logger := sim.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	content, err := gamedata.LoadContent()
	if err != nil {
		return err
	}
	if !content.Encounters.HasEnemies(sim.Terrain) {
		return fmt.Errorf("terrain %q spawns no enemies", sim.Terrain)
	}
	m, err := world.NewMap(ctx, content.World)
	if err != nil {
		return err
	}
	party, err := entity.NewDefaultParty(content.Classes, content.Party, m.StartX, m.StartY)
	if err != nil {
		return err
	}
	source := dice.NewSeededSource(sim.Seed)
	exp, err := expedition.New(expedition.Config{
		Map:        m,
		Party:      party,
		Encounters: content.Encounters,
		Quests:     content.Quests,
		Source:     source,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	wins := 0
	for i := 1; i <= sim.Battles; i++ {
		summary, err := fightOne(ctx, exp, source, sim.Terrain, logger)
		if err != nil {
			return fmt.Errorf("battle %d: %w", i, err)
		}
		if summary.Outcome == combat.OutcomeVictory {
			wins++
		}
		fmt.Fprintf(out, "Battle %3d: %s\n", i, summary)
		if sim.Journal {
			for _, line := range summary.Narration {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
		exp.Camp()
	}

	fmt.Fprintf(out, "%d of %d battles won on %s\n", wins, sim.Battles, sim.Terrain)
	return nil
}

func fightOne(ctx context.Context, exp *expedition.Expedition, source dice.Source, terrain string, logger *zap.Logger) (battleSummary, error) {
	enc := exp.GenerateEncounter(terrain)
	summary := battleSummary{Enemies: fmt.Sprintf("%dx %s", len(enc.Members), enc.Name)}
	exp.StartEncounter(ctx, enc)

	narrator := combat.NarratorFunc(func(message string) {
		exp.Log(message)
		summary.Narration = append(summary.Narration, message)
	})

	pilot := combat.NewAutopilot(ctx)
	session, err := combat.NewSession(combat.Config{
		Party:          exp.Party(),
		Source:         source,
		Scheduler:      combat.ImmediateScheduler{},
		Listener:       pilot,
		Narrator:       narrator,
		OutcomeHandler: exp,
		Logger:         logger,
	})
	if err != nil {
		return summary, err
	}
	pilot.Attach(session)
	if err := session.Start(ctx, enc); err != nil {
		return summary, err
	}
	if !session.Finished() {
		// Autopilot only stalls if a hero turn cannot be played.
		session.Stop()
		exp.EncounterEnded(combat.OutcomeNone)
	}

	summary.Outcome = session.Outcome()
	summary.Rounds = session.Round()
	summary.Actions = pilot.Actions()
	summary.PartyHealth = exp.Party().TotalHealth()
	for _, h := range exp.Party().Members {
		summary.PartyMax += h.Combat.MaxHealth
	}
	return summary, nil
}
