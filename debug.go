package nodewire

import "github.com/hashicorp/go-hclog"

// debugLog prints per-tick propagation stats. Only called in debug mode.
func (e *Engine) debugLog(stats TickStats) {
	e.log.Debug("tick",
		"tick", stats.Tick,
		"fired", stats.Fired,
		"activated", stats.Activated,
		"effects", stats.Effects,
		"queued", stats.Queued,
		"took", stats.Duration)
}

// debugMaxFanOut is the number of remotes on one output pin above which a
// warning is logged.
const debugMaxFanOut = 64

func debugCheckFanOut(log hclog.Logger, pin OutPinID, remotes int) {
	if remotes > debugMaxFanOut {
		log.Warn("output pin fan-out exceeds threshold", "pin", pin.String(), "remotes", remotes, "threshold", debugMaxFanOut)
	}
}

// debugCheckGraph panics with a descriptive message when the graph breaks an
// invariant. Only called in debug mode after edits the engine performs.
func debugCheckGraph(g *Graph, op string) {
	if err := g.Validate(); err != nil {
		panic("nodewire debug: " + op + ": " + err.Error())
	}
}
