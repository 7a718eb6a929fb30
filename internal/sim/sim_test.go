package sim

import (
	"testing"

	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/object"
)

// idle never acts.
type idle struct{}

func (idle) Decide(ai.View, float64) []ai.Action { return nil }

// scripted returns its actions on the first call only.
type scripted struct {
	actions []ai.Action
	done    bool
}

func (s *scripted) Decide(ai.View, float64) []ai.Action {
	if s.done {
		return nil
	}
	s.done = true
	return s.actions
}

// recorder counts hook calls.
type recorder struct {
	launched, succeeded, failed, victory, defeat int
}

func (r *recorder) FleetLaunched()   { r.launched++ }
func (r *recorder) AttackSucceeded() { r.succeeded++ }
func (r *recorder) AttackFailed()    { r.failed++ }
func (r *recorder) GameVictory()     { r.victory++ }
func (r *recorder) GameDefeat()      { r.defeat++ }

// newTestGame builds a match on fixed planets with a passive opponent.
func newTestGame(planets []*object.Planet, opts ...Option) *GameState {
	base := []Option{WithSeed(1), WithPlanets(planets), WithEnemyStrategy(idle{})}
	return New(DefaultConfig(), append(base, opts...)...)
}

// duel is a Player home, an Enemy home and a neutral planet 200 units from the Player.
func duel(playerShips, enemyShips, neutralShips int) []*object.Planet {
	return []*object.Planet{
		object.NewPlanet(0, 100, 100, 20, object.Player, playerShips),
		object.NewPlanet(1, 1900, 1000, 20, object.Enemy, enemyShips),
		object.NewPlanet(2, 300, 100, 20, object.Neutral, neutralShips),
	}
}

// --- Construction ---

func TestNew_GeneratedMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MapSize = mapgen.Small
	g := New(cfg, WithSeed(7), WithEnemyStrategy(idle{}))

	if g.Phase() != PhaseRunning {
		t.Fatalf("expected running phase, got %s", g.Phase())
	}
	if len(g.Planets()) != mapgen.Small.PlanetCount() {
		t.Fatalf("expected %d planets, got %d", mapgen.Small.PlanetCount(), len(g.Planets()))
	}
	owners := map[object.Owner]int{}
	for i, p := range g.Planets() {
		if int(p.ID()) != i {
			t.Fatalf("expected planet id %d, got %d", i, p.ID())
		}
		owners[p.Owner()]++
	}
	if owners[object.Player] != 1 || owners[object.Enemy] != 1 {
		t.Fatalf("expected one home per side, got %v", owners)
	}
	if len(g.Fleets()) != 0 || g.GameTime() != 0 || g.TacticalPenalties() != 0 {
		t.Fatal("expected a fresh match")
	}
}

func TestSelect_InvalidClears(t *testing.T) {
	g := newTestGame(duel(10, 10, 10))
	g.Select(2)
	if g.SelectedPlanet() != 2 {
		t.Fatalf("expected selection 2, got %d", g.SelectedPlanet())
	}
	g.Select(99)
	if g.SelectedPlanet() != object.NoPlanet {
		t.Fatalf("expected no selection, got %d", g.SelectedPlanet())
	}
	if p := g.PlanetAt(305, 95); p == nil || p.ID() != 2 {
		t.Fatalf("expected planet 2 under the cursor, got %v", p)
	}
}

// --- Sending ---

func TestSendFleet_ClampsToAvailable(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(duel(30, 10, 10), WithHooks(rec))

	if !g.SendFleet(0, 2, 100) {
		t.Fatal("expected send to succeed")
	}
	if len(g.Fleets()) != 1 || g.Fleets()[0].Ships() != 30 {
		t.Fatalf("expected one fleet of 30, got %d fleets", len(g.Fleets()))
	}
	if g.Planet(0).Ships() != 0 {
		t.Fatalf("expected empty source, got %d", g.Planet(0).Ships())
	}
	if g.Fleets()[0].Label() != "Alpha" {
		t.Fatalf("expected first label Alpha, got %s", g.Fleets()[0].Label())
	}
	if rec.launched != 1 {
		t.Fatalf("expected 1 launch hook, got %d", rec.launched)
	}
}

func TestSendAmount(t *testing.T) {
	cases := []struct {
		ships    int
		fraction float64
		want     int
	}{
		{100, 0.5, 50},
		{7, 0.5, 3},
		{1, 0.1, 1},
		{3, 0.1, 1},
		{30, 0.7, 21},
		{45, 1.0, 45},
		{0, 0.5, 0},
	}
	for _, tc := range cases {
		if got := SendAmount(tc.ships, tc.fraction); got != tc.want {
			t.Fatalf("expected %d for %d ships at %.1f, got %d", tc.want, tc.ships, tc.fraction, got)
		}
	}
}

func TestSendFleet_NothingToSend(t *testing.T) {
	g := newTestGame(duel(0, 10, 10))
	if g.SendFleet(0, 2, 10) {
		t.Fatal("expected send from empty planet to fail")
	}
	g.Planet(0).SetShips(10)
	if g.SendFleet(0, 2, 0) {
		t.Fatal("expected zero-ship send to fail")
	}
	if g.SendFleet(0, 42, 5) {
		t.Fatal("expected send to unknown planet to fail")
	}
	if len(g.Fleets()) != 0 {
		t.Fatalf("expected no fleets, got %d", len(g.Fleets()))
	}
}

func TestDrainEvents(t *testing.T) {
	g := newTestGame(duel(30, 10, 10))
	g.SendFleet(0, 2, 5)

	events := g.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventFleetLaunched {
		t.Fatalf("expected one launch event, got %v", events)
	}
	if events[0].Ships != 5 || events[0].Side != object.Player {
		t.Fatalf("unexpected event %+v", events[0])
	}
	if len(g.DrainEvents()) != 0 {
		t.Fatal("expected drained log to be empty")
	}
}

// --- Combat ---

func TestResolveArrival_AgainstNeutral(t *testing.T) {
	cases := []struct {
		name      string
		defenders int
		attackers int
		owner     object.Owner
		ships     int
		penalties int
	}{
		{"repelled", 30, 20, object.Neutral, 10, 5},
		{"exact tie captures empty", 30, 30, object.Player, 0, 0},
		{"overflow captures", 30, 45, object.Player, 15, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			g := newTestGame(duel(100, 10, tc.defenders), WithHooks(rec))
			f := object.NewFleet("Alpha", object.Player, g.Planet(0), g.Planet(2), tc.attackers)
			g.resolveArrival(f)

			target := g.Planet(2)
			if target.Owner() != tc.owner {
				t.Fatalf("expected owner %s, got %s", tc.owner, target.Owner())
			}
			if target.Ships() != tc.ships {
				t.Fatalf("expected %d ships, got %d", tc.ships, target.Ships())
			}
			if g.TacticalPenalties() != tc.penalties {
				t.Fatalf("expected penalties %d, got %d", tc.penalties, g.TacticalPenalties())
			}
			stats := g.Stats(object.Player)
			if tc.owner == object.Player && (stats.BattlesWon != 1 || rec.succeeded != 1) {
				t.Fatalf("expected a recorded win, got %+v", stats)
			}
			if tc.owner == object.Neutral && (stats.BattlesLost != 1 || rec.failed != 1) {
				t.Fatalf("expected a recorded loss, got %+v", stats)
			}
		})
	}
}

func TestResolveArrival_PlayerPlanetLost(t *testing.T) {
	g := newTestGame(duel(30, 100, 10))
	f := object.NewFleet("Alpha", object.Enemy, g.Planet(1), g.Planet(0), 40)
	g.resolveArrival(f)

	if g.Planet(0).Owner() != object.Enemy || g.Planet(0).Ships() != 10 {
		t.Fatalf("expected Enemy with 10 ships, got %s with %d", g.Planet(0).Owner(), g.Planet(0).Ships())
	}
	if g.TacticalPenalties() != 10 {
		t.Fatalf("expected penalties 10, got %d", g.TacticalPenalties())
	}
	if g.Stats(object.Enemy).BattlesWon != 1 || g.Stats(object.Player).BattlesLost != 1 {
		t.Fatalf("expected battle stats on both sides, got %+v %+v", g.Stats(object.Enemy), g.Stats(object.Player))
	}
}

func TestResolveArrival_ShieldHalvesForce(t *testing.T) {
	g := newTestGame(duel(100, 30, 10))
	if !g.ActivateShield(1, object.Enemy) {
		t.Fatal("expected shield activation")
	}
	f := object.NewFleet("Alpha", object.Player, g.Planet(0), g.Planet(1), 51)
	g.resolveArrival(f)

	if g.Planet(1).Owner() != object.Enemy || g.Planet(1).Ships() != 5 {
		t.Fatalf("expected Enemy to hold with 5, got %s with %d", g.Planet(1).Owner(), g.Planet(1).Ships())
	}
}

func TestResolveArrival_Reinforce(t *testing.T) {
	g := newTestGame(duel(30, 10, 10))
	g.Planet(2).SetOwner(object.Player)
	f := object.NewFleet("Alpha", object.Player, g.Planet(0), g.Planet(2), 7)
	g.resolveArrival(f)

	if g.Planet(2).Ships() != 17 {
		t.Fatalf("expected 17 ships, got %d", g.Planet(2).Ships())
	}
	if g.TacticalPenalties() != 0 {
		t.Fatalf("expected no penalties, got %d", g.TacticalPenalties())
	}
}

func TestUpdate_FleetTravelsAndCaptures(t *testing.T) {
	g := newTestGame(duel(50, 10, 20))
	g.SendFleet(0, 2, 30)

	g.Update(0.5)
	if len(g.Fleets()) != 1 {
		t.Fatalf("expected fleet in transit, got %d fleets", len(g.Fleets()))
	}
	g.Update(0.5)
	if len(g.Fleets()) != 0 {
		t.Fatalf("expected fleet to land, got %d fleets", len(g.Fleets()))
	}
	if g.Planet(2).Owner() != object.Player || g.Planet(2).Ships() != 10 {
		t.Fatalf("expected Player with 10 ships, got %s with %d", g.Planet(2).Owner(), g.Planet(2).Ships())
	}
}

func TestUpdate_SimultaneousArrivalsResolveInLaunchOrder(t *testing.T) {
	planets := []*object.Planet{
		object.NewPlanet(0, 100, 100, 20, object.Player, 100),
		object.NewPlanet(1, 500, 100, 20, object.Enemy, 100),
		object.NewPlanet(2, 300, 100, 20, object.Neutral, 20),
	}
	g := newTestGame(planets)
	if !g.SendFleet(0, 2, 30) || !g.SendFleet(1, 2, 15) {
		t.Fatal("expected both launches to succeed")
	}
	g.DrainEvents()

	// Both fleets are 200 units out and land in the same one-second tick.
	g.Update(1.0)

	if len(g.Fleets()) != 0 {
		t.Fatalf("expected both fleets to land, got %d in transit", len(g.Fleets()))
	}
	var captures []Event
	for _, e := range g.DrainEvents() {
		if e.Kind == EventPlanetCaptured {
			captures = append(captures, e)
		}
	}
	if len(captures) != 2 {
		t.Fatalf("expected 2 captures, got %d", len(captures))
	}
	if captures[0].Side != object.Player || captures[0].Defender != object.Neutral || captures[0].Ships != 10 {
		t.Fatalf("expected Player to take the neutral with 10 ships first, got %+v", captures[0])
	}
	if captures[1].Side != object.Enemy || captures[1].Defender != object.Player || captures[1].Ships != 5 {
		t.Fatalf("expected Enemy to take it from Player with 5 ships second, got %+v", captures[1])
	}

	// 5 survivors plus one second of production at rate 1.
	target := g.Planet(2)
	if target.Owner() != object.Enemy || target.Ships() != 6 {
		t.Fatalf("expected Enemy holding 6 ships, got %s with %d", target.Owner(), target.Ships())
	}
	if got := g.Stats(object.Player); got.BattlesWon != 1 || got.BattlesLost != 1 {
		t.Fatalf("expected Player 1 won 1 lost, got %+v", got)
	}
	if got := g.Stats(object.Enemy); got.BattlesWon != 1 || got.BattlesLost != 0 {
		t.Fatalf("expected Enemy 1 won 0 lost, got %+v", got)
	}
	if g.TacticalPenalties() != config.PenaltyPlanetLost {
		t.Fatalf("expected penalty %d, got %d", config.PenaltyPlanetLost, g.TacticalPenalties())
	}
}

// --- Production ---

func TestUpdate_ProductionIndependentOfStepSize(t *testing.T) {
	big := newTestGame(duel(0, 0, 0))
	big.Update(2.0)

	small := newTestGame(duel(0, 0, 0))
	for i := 0; i < 20; i++ {
		small.Update(0.1)
	}

	for _, g := range []*GameState{big, small} {
		if g.Planet(0).Ships() != 2 {
			t.Fatalf("expected 2 ships, got %d", g.Planet(0).Ships())
		}
		if g.Planet(2).Ships() != 0 {
			t.Fatalf("expected neutral planet not to grow, got %d", g.Planet(2).Ships())
		}
		if g.Stats(object.Player).ShipsProduced != 2 {
			t.Fatalf("expected 2 ships produced, got %d", g.Stats(object.Player).ShipsProduced)
		}
	}
}

func TestUpdate_SurgeDoublesProduction(t *testing.T) {
	g := newTestGame(duel(0, 0, 0))
	if !g.ActivateProductionSurge(object.Player) {
		t.Fatal("expected surge activation")
	}
	g.Update(1.0)
	if g.Planet(0).Ships() != 2 {
		t.Fatalf("expected 2 ships under surge, got %d", g.Planet(0).Ships())
	}
	if g.Planet(1).Ships() != 1 {
		t.Fatalf("expected enemy unaffected, got %d", g.Planet(1).Ships())
	}
	if got := g.PlayerStats(object.Player).ProductionRate; got != 2 {
		t.Fatalf("expected effective rate 2, got %d", got)
	}
}

// --- Abilities ---

func TestActivateRecall_ReturnsShipsToOrigins(t *testing.T) {
	planets := []*object.Planet{
		object.NewPlanet(0, 100, 100, 20, object.Player, 10),
		object.NewPlanet(1, 100, 400, 20, object.Player, 20),
		object.NewPlanet(2, 100, 700, 20, object.Player, 30),
		object.NewPlanet(3, 1900, 600, 20, object.Enemy, 10),
	}
	g := newTestGame(planets)
	g.SendFleet(0, 3, 10)
	g.SendFleet(1, 3, 20)
	g.SendFleet(2, 3, 30)
	g.SendFleet(3, 0, 4)

	if !g.ActivateRecall(object.Player) {
		t.Fatal("expected recall activation")
	}
	for i, want := range []int{10, 20, 30} {
		if got := g.Planet(object.PlanetID(i)).Ships(); got != want {
			t.Fatalf("expected planet %d to hold %d, got %d", i, want, got)
		}
	}
	if len(g.Fleets()) != 1 || g.Fleets()[0].Owner() != object.Enemy {
		t.Fatalf("expected only the enemy fleet to remain, got %d fleets", len(g.Fleets()))
	}
	if g.ActivateRecall(object.Player) {
		t.Fatal("expected recall to be single-use")
	}
}

func TestActivateShield_RequiresOwnership(t *testing.T) {
	g := newTestGame(duel(10, 10, 10))
	if g.ActivateShield(2, object.Player) {
		t.Fatal("expected shield on neutral planet to fail")
	}
	if g.ActivateShield(1, object.Player) {
		t.Fatal("expected shield on enemy planet to fail")
	}
	if !g.Abilities(object.Player).Get(object.Shield).IsAvailable() {
		t.Fatal("expected failed attempts to keep the shield available")
	}
	if !g.ActivateShield(0, object.Player) {
		t.Fatal("expected shield on own planet to succeed")
	}
	if g.ActivateShield(0, object.Player) {
		t.Fatal("expected shield to be single-use")
	}
}

func TestApplyActions_DropsInvalidSend(t *testing.T) {
	bad := &scripted{actions: []ai.Action{ai.SendFleet{Source: 0, Target: 2, Ships: 5}}}
	g := newTestGame(duel(30, 30, 10), WithEnemyStrategy(bad))
	g.Update(0.01)

	if len(g.Fleets()) != 0 {
		t.Fatalf("expected enemy send from a Player planet to be dropped, got %d fleets", len(g.Fleets()))
	}
	if g.Planet(0).Ships() != 30 {
		t.Fatalf("expected source untouched, got %d", g.Planet(0).Ships())
	}
}

func TestApplyActions_ExecutesValidSend(t *testing.T) {
	good := &scripted{actions: []ai.Action{ai.SendFleet{Source: 1, Target: 0, Ships: 5}}}
	g := newTestGame(duel(30, 30, 10), WithEnemyStrategy(good))
	g.Update(0.01)

	if len(g.Fleets()) != 1 || g.Fleets()[0].Owner() != object.Enemy {
		t.Fatalf("expected one enemy fleet, got %d", len(g.Fleets()))
	}
	if g.Planet(1).Ships() != 25 {
		t.Fatalf("expected 25 ships left, got %d", g.Planet(1).Ships())
	}
}

// viewRecorder keeps what a strategy was shown.
type viewRecorder struct {
	planets []object.PlanetReader
	fleets  []object.FleetReader
	recall  bool
}

func (r *viewRecorder) Decide(v ai.View, _ float64) []ai.Action {
	r.planets = v.Planets()
	r.fleets = v.Fleets()
	r.recall = v.AbilityAvailable(object.Enemy, object.Recall)
	return nil
}

func TestStrategyViewIsACopy(t *testing.T) {
	rec := &viewRecorder{}
	g := newTestGame(duel(40, 30, 10), WithEnemyStrategy(rec))
	g.SendFleet(1, 2, 10)
	g.ActivateRecall(object.Enemy)
	g.SendFleet(1, 2, 5)
	g.Update(0.1)

	if len(rec.planets) != 3 || len(rec.fleets) != 1 {
		t.Fatalf("expected 3 planets and 1 fleet, got %d and %d", len(rec.planets), len(rec.fleets))
	}
	if _, ok := rec.planets[1].(*object.Planet); ok {
		t.Fatal("expected strategies to get planet copies, got the live planet")
	}
	if _, ok := rec.fleets[0].(*object.Fleet); ok {
		t.Fatal("expected strategies to get fleet copies, got the live fleet")
	}
	if rec.planets[1].Owner() != object.Enemy || rec.planets[1].Ships() != 25 {
		t.Fatalf("expected Enemy home with 25 ships, got %s with %d", rec.planets[1].Owner(), rec.planets[1].Ships())
	}
	if rec.fleets[0].Ships() != 5 || rec.fleets[0].Target() != 2 {
		t.Fatalf("expected the 5-ship fleet to planet 2, got %d to %d", rec.fleets[0].Ships(), rec.fleets[0].Target())
	}
	if rec.recall {
		t.Fatal("expected a used recall to be reported unavailable")
	}

	g.Planet(1).SetShips(99)
	if rec.planets[1].Ships() != 25 {
		t.Fatalf("expected the copy to keep 25 ships, got %d", rec.planets[1].Ships())
	}
}

// --- Scoring and game over ---

func TestTimeBonus(t *testing.T) {
	cases := []struct {
		time  float64
		bonus int
	}{
		{0, 50}, {59.9, 50}, {60, 30}, {119, 30}, {120, 15}, {180, 5}, {299, 5}, {300, 0}, {1000, 0},
	}
	for _, tc := range cases {
		if got := TimeBonus(tc.time); got != tc.bonus {
			t.Fatalf("expected bonus %d at %.1fs, got %d", tc.bonus, tc.time, got)
		}
	}
}

func TestScore(t *testing.T) {
	if got := Score(20, 90); got != 110 {
		t.Fatalf("expected 110, got %d", got)
	}
	if got := Score(500, 400); got != 0 {
		t.Fatalf("expected score floor of 0, got %d", got)
	}

	g := newTestGame(duel(10, 10, 10))
	g.penalties = 20
	g.gameTime = 90
	if got := g.FinalScore(); got != 110 {
		t.Fatalf("expected final score 110, got %d", got)
	}
	g.penalties = 150
	g.gameTime = 45
	if got, want := g.FinalScore(), Score(150, 45); got != want || got != 50 {
		t.Fatalf("expected final score %d (time bonus only), got %d", want, got)
	}
}

func TestCheckGameOver_Victory(t *testing.T) {
	rec := &recorder{}
	planets := []*object.Planet{
		object.NewPlanet(0, 100, 100, 20, object.Player, 50),
		object.NewPlanet(1, 300, 100, 20, object.Enemy, 5),
	}
	g := newTestGame(planets, WithHooks(rec))
	g.SendFleet(0, 1, 30)
	g.Update(0.5)
	if g.CheckGameOver() != PhaseRunning {
		t.Fatal("expected match to continue while the enemy holds a planet")
	}
	g.Update(0.5)

	if g.CheckGameOver() != PhaseVictory {
		t.Fatalf("expected victory, got %s", g.Phase())
	}
	g.CheckGameOver()
	if rec.victory != 1 || rec.defeat != 0 {
		t.Fatalf("expected one victory hook, got %d victory %d defeat", rec.victory, rec.defeat)
	}

	r := g.Result()
	if !r.Victory || r.Cheater || r.Score != 150 || r.BattlesWon != 1 || r.PlanetsControlled != 2 {
		t.Fatalf("unexpected result %+v", r)
	}

	before := g.GameTime()
	g.Update(1.0)
	if g.GameTime() != before {
		t.Fatal("expected update to be a no-op after game over")
	}
}

func TestCheckGameOver_Defeat(t *testing.T) {
	rec := &recorder{}
	planets := []*object.Planet{
		object.NewPlanet(0, 100, 100, 20, object.Player, 5),
		object.NewPlanet(1, 300, 100, 20, object.Enemy, 50),
	}
	g := newTestGame(planets, WithHooks(rec))
	g.SendFleet(1, 0, 30)
	g.Update(0.5)
	g.Update(0.5)

	if g.CheckGameOver() != PhaseDefeat {
		t.Fatalf("expected defeat, got %s", g.Phase())
	}
	if rec.defeat != 1 || rec.victory != 0 {
		t.Fatalf("expected one defeat hook, got %d defeat %d victory", rec.defeat, rec.victory)
	}
	r := g.Result()
	if r.Victory || r.Score != 0 || r.BattlesWon != 1 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestCheckGameOver_DefeatOnGeneratedMap(t *testing.T) {
	rec := &recorder{}
	cfg := DefaultConfig()
	cfg.MapSize = mapgen.Small
	g := New(cfg, WithSeed(3), WithEnemyStrategy(idle{}), WithHooks(rec))

	home := object.NoPlanet
	for _, p := range g.Planets() {
		if p.Owner() == object.Player {
			home = p.ID()
		}
	}
	if !home.Valid() {
		t.Fatal("expected a Player home planet")
	}
	g.Planet(home).SetOwner(object.Neutral)
	if len(g.Fleets()) != 0 {
		t.Fatalf("expected no fleets at match start, got %d", len(g.Fleets()))
	}

	if got := g.CheckGameOver(); got != PhaseDefeat {
		t.Fatalf("expected defeat, got %s", got)
	}
	g.CheckGameOver()
	if rec.defeat != 1 || rec.victory != 0 {
		t.Fatalf("expected one defeat hook, got %d defeat %d victory", rec.defeat, rec.victory)
	}
	if r := g.Result(); r.Victory || r.Score != 0 {
		t.Fatalf("expected a zero-score defeat, got %+v", r)
	}
}

func TestCheckGameOver_FleetKeepsSideAlive(t *testing.T) {
	g := newTestGame(duel(10, 10, 0))
	g.SendFleet(1, 2, 10)
	g.Planet(1).SetOwner(object.Neutral)

	if g.CheckGameOver() != PhaseRunning {
		t.Fatalf("expected a fleet in transit to keep the enemy alive, got %s", g.Phase())
	}
}

func TestForceVictory_FlagsCheater(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MapSize = mapgen.Small
	g := New(cfg, WithSeed(3), WithEnemyStrategy(idle{}))
	g.ForceVictory()

	if g.CheckGameOver() != PhaseVictory {
		t.Fatalf("expected victory, got %s", g.Phase())
	}
	if !g.Cheated() || !g.Result().Cheater {
		t.Fatal("expected match to be flagged as cheated")
	}
}
