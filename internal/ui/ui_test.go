package ui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/expedition"
	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/world"
)

func testView(t *testing.T) View {
	t.Helper()
	content := gamedata.MustLoadContent()
	m, err := world.NewMap(context.Background(), content.World)
	require.NoError(t, err)
	party, err := entity.NewDefaultParty(content.Classes, content.Party, m.StartX, m.StartY)
	require.NoError(t, err)
	return View{
		World:   m,
		Party:   party,
		Hour:    10.5,
		Fatigue: 1.2,
		Mode:    "exploration",
		Journal: []expedition.Entry{{Hour: 10.5, Text: "You travel on."}},
		Quests: []expedition.Quest{
			{ID: "a", Title: "Reach Kvirasim", Status: expedition.QuestActive},
			{ID: "b", Title: "Hidden", Status: expedition.QuestOpen},
			{ID: "c", Title: "Done", Status: expedition.QuestCompleted},
		},
	}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestStatusLine(t *testing.T) {
	v := testView(t)
	assert.Equal(t, "Rondrajs Mark  10:30  Fatigue 1.2  [exploration]", StatusLine(v))
}

func TestPartyLines(t *testing.T) {
	v := testView(t)
	mage := v.Party.Members[1]
	mage.Combat.TempDefense = 2

	lines := texts(PartyLines(v.Party))
	require.Len(t, lines, 1+2*len(v.Party.Members))
	assert.Equal(t, "Party", lines[0])
	assert.Contains(t, lines[3], "Hesindea Zauberkundig")
	assert.Contains(t, lines[4], "+2 DEF")
	assert.NotContains(t, lines[2], "DEF")
	assert.Nil(t, PartyLines(nil))
}

func TestQuestLinesHideOpenQuests(t *testing.T) {
	lines := texts(QuestLines(testView(t).Quests))
	assert.Equal(t, []string{"Quests", "- Reach Kvirasim", "+ Done"}, lines)
}

func TestActionMenu(t *testing.T) {
	actions := gamedata.NewActionRegistry([]gamedata.ActionDef{
		{ID: "attack", Name: "Attack", Keys: []string{"1", "a"}},
		{ID: "cast", Name: "Cast Spell", Keys: []string{"2"}, AstralCost: 4},
		{ID: "defend", Name: "Defend"},
	})
	assert.Equal(t, "[1] Attack  [2] Cast Spell (4 AE)  [?] Defend", ActionMenu(actions.All()))
}

func TestCombatLines(t *testing.T) {
	v := testView(t)
	hero := v.Party.Members[0]
	boar := &entity.Enemy{ID: "Wild Boar-0", Name: "Wild Boar", Health: 0, MaxHealth: 18}
	dog := &entity.Enemy{ID: "Wild Dog-1", Name: "Wild Dog", Health: 9, MaxHealth: 16}
	enc := &entity.Encounter{Name: "Wild Dog", Members: []*entity.Enemy{boar, dog}}

	cv := &CombatView{
		Update: combat.Update{
			Round:           2,
			Phase:           combat.PhaseAwaitingHeroInput,
			Encounter:       enc,
			WaitingForInput: true,
			ActiveIndex:     0,
			Active:          &combat.CombatantSummary{Side: combat.SideHero, ID: hero.ID, Name: hero.Name},
			TurnOrder: []combat.TurnEntry{
				{Side: combat.SideHero, ID: hero.ID, Initiative: 14},
				{Side: combat.SideEnemy, ID: dog.ID, Initiative: 10},
			},
		},
		Target:  dog.ID,
		Actions: gamedata.MustLoadContent().Actions.All(),
	}

	lines := CombatLines(cv, v.Party)
	got := texts(lines)
	assert.Equal(t, "Round 2  awaiting_hero_input", got[0])
	assert.Contains(t, got[2], ">")
	assert.Contains(t, got[2], hero.Name)
	assert.Contains(t, got, "* ? Wild Dog-1  LE 9/16")
	assert.Contains(t, got, hero.Name+" acts:")
	assert.Contains(t, got[len(got)-1], "[1] Attack")
	assert.Equal(t, styleDown, lines[5].Style, "defeated boar is drawn as down")

	cv.Update.WaitingForInput = false
	got = texts(CombatLines(cv, v.Party))
	assert.Equal(t, "The enemy moves...", got[len(got)-1])

	cv.Update.Finished = true
	got = texts(CombatLines(cv, v.Party))
	assert.Equal(t, "The fight is over.", got[len(got)-1])
	assert.Nil(t, CombatLines(nil, v.Party))
}

func TestRenderDrawsMapAndParty(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := WrapScreen(sim)
	require.NoError(t, err)
	defer screen.Close()
	sim.SetSize(100, 30)

	v := testView(t)
	NewRenderer(screen).Render(v)

	r, _, _, _ := sim.GetContent(mapLeft+v.Party.X*tileCols, mapTop+v.Party.Y)
	assert.Equal(t, '@', r)

	town := v.World.Points[0]
	r, _, _, _ = sim.GetContent(mapLeft+town.X*tileCols, mapTop+town.Y)
	assert.Equal(t, '!', r)

	r, _, _, _ = sim.GetContent(0, 0)
	assert.Equal(t, 'R', r, "status line starts with the world name")
}

// fullQueue is a screen whose event queue never has room.
type fullQueue struct {
	tcell.Screen
	posts int
}

func (q *fullQueue) PostEvent(tcell.Event) error {
	q.posts++
	return tcell.ErrEventQFull
}

func TestPostDeliversToPollEvent(t *testing.T) {
	screen, err := WrapScreen(tcell.NewSimulationScreen("UTF-8"))
	require.NoError(t, err)
	defer screen.Close()

	ran := false
	require.NoError(t, screen.Post(func() { ran = true }))
	ev, ok := screen.PollEvent().(*tcell.EventInterrupt)
	require.True(t, ok)
	ev.Data().(func())()
	assert.True(t, ran)
}

func TestPostGivesUpWhenQueueStaysFull(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()
	q := &fullQueue{Screen: sim}
	screen := &Screen{screen: q, postTimeout: 50 * time.Millisecond}

	start := time.Now()
	err := screen.Post(func() {})
	require.ErrorIs(t, err, tcell.ErrEventQFull)
	assert.Greater(t, q.posts, 1, "retried before giving up")
	assert.Less(t, time.Since(start), 2*time.Second)
}
