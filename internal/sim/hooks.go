package sim

// Hooks receives the semantic trigger points of a match. Implementations
// decide what, if anything, to play; the simulation does not care.
type Hooks interface {
	FleetLaunched()
	AttackSucceeded()
	AttackFailed()
	GameVictory()
	GameDefeat()
}

// NopHooks ignores every trigger.
type NopHooks struct{}

func (NopHooks) FleetLaunched()   {}
func (NopHooks) AttackSucceeded() {}
func (NopHooks) AttackFailed()    {}
func (NopHooks) GameVictory()     {}
func (NopHooks) GameDefeat()      {}

// Compile-time check that NopHooks implements Hooks.
var _ Hooks = NopHooks{}
