package nodewire

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// EffectKind identifies a world effect.
type EffectKind uint8

const (
	EffectSpawnBullet EffectKind = iota // spawn a projectile at Loc heading Dir
	EffectDealDamage                    // damage Target
	EffectExplosion                     // spawn an explosion at Loc
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpawnBullet:
		return "SpawnBullet"
	case EffectDealDamage:
		return "DealDamage"
	case EffectExplosion:
		return "Explosion"
	default:
		return fmt.Sprintf("EffectKind(%d)", uint8(k))
	}
}

// Effect is a request for the game world to do something. Effects are the only
// way the graph affects the rest of the game.
//
// Node and Output name the originating node and the output slot a consumer
// should fire, via Engine.Fire, when the effect completes (a bullet
// despawning, a target dying).
type Effect struct {
	Kind   EffectKind
	Node   NodeID
	Output int

	Loc    Vec2
	Dir    Vec2
	Target Entity

	HasDir bool
	// DirFallback is set when Dir came from the configured fallback rather
	// than the payload.
	DirFallback bool
}

// CompletionPin returns the output pin to fire when the effect completes.
func (e Effect) CompletionPin() OutPinID {
	return OutPinID{Node: e.Node, Output: e.Output}
}

// Outcome is what interpreting one activation produced.
type Outcome struct {
	Effects []Effect
	Fires   []OutputFired
}

// Interpreter maps activations to effects and re-fires by node kind.
type Interpreter struct {
	log      hclog.Logger
	debug    bool
	fallback DirectionFallback
}

// NewInterpreter creates an interpreter from the relevant Config fields.
func NewInterpreter(cfg Config) *Interpreter {
	return &Interpreter{
		log:      cfg.logger().Named("interpreter"),
		debug:    cfg.Debug,
		fallback: cfg.DirectionFallback,
	}
}

// behavior is one kind's activation handler. It appends to out.
type behavior func(in *Interpreter, n *Node, p Payload, out *Outcome)

// behaviorOf returns nil for kinds without a handler.
func behaviorOf(k Kind) behavior {
	switch k {
	case KindOnShoot:
		return activateSource
	case KindSpawnBullet:
		return activateSpawnBullet
	case KindDealDamage:
		return activateDealDamage
	case KindExplosion:
		return activateExplosion
	case KindSpread:
		return activateSpread
	case KindRepeat:
		return activateRepeat
	case KindFilter:
		return activateFilter
	default:
		return nil
	}
}

// Interpret looks up the activated node and runs its kind's behavior.
//
// An activation of a node that no longer exists returns an error wrapping
// ErrUnknownNode. A node whose kind has no behavior returns an error wrapping
// ErrUnknownKind; in debug mode it panics instead, since it means a new kind
// was added without being wired in here.
func (in *Interpreter) Interpret(g *Graph, act NodeActivated) (Outcome, error) {
	var out Outcome
	n, ok := g.Node(act.Node)
	if !ok {
		return out, fmt.Errorf("activate %s: %w", act.Node, ErrUnknownNode)
	}
	fn := behaviorOf(n.Kind)
	if fn == nil {
		err := fmt.Errorf("activate %s: %w: %s", act.Node, ErrUnknownKind, n.Kind)
		if in.debug {
			panic("nodewire: " + err.Error())
		}
		return out, err
	}
	fn(in, n, act.Payload, &out)
	return out, nil
}

func activateSource(in *Interpreter, n *Node, _ Payload, _ *Outcome) {
	in.log.Warn("source node activated from downstream; ignoring", "node", n.ID.String(), "kind", n.Kind.String())
}

func activateSpawnBullet(in *Interpreter, n *Node, p Payload, out *Outcome) {
	if !p.HasLoc {
		in.log.Debug("spawn skipped: payload has no location", "node", n.ID.String())
		return
	}
	eff := Effect{
		Kind:   EffectSpawnBullet,
		Node:   n.ID,
		Output: OutputBulletDespawned,
		Loc:    p.Loc,
		Dir:    p.Dir,
		HasDir: p.HasDir,
	}
	if !eff.HasDir && in.fallback != nil {
		eff.Dir, eff.HasDir, eff.DirFallback = in.fallback(), true, true
	}
	out.Effects = append(out.Effects, eff)
}

func activateDealDamage(in *Interpreter, n *Node, p Payload, out *Outcome) {
	if !p.HasTarget {
		in.log.Debug("damage skipped: payload has no target", "node", n.ID.String())
		return
	}
	out.Effects = append(out.Effects, Effect{
		Kind:   EffectDealDamage,
		Node:   n.ID,
		Output: OutputDamageFatal,
		Loc:    p.Loc,
		Target: p.Target,
	})
}

func activateExplosion(in *Interpreter, n *Node, p Payload, out *Outcome) {
	if !p.HasLoc {
		in.log.Debug("explosion skipped: payload has no location", "node", n.ID.String())
		return
	}
	out.Effects = append(out.Effects, Effect{
		Kind:   EffectExplosion,
		Node:   n.ID,
		Output: OutputExplosionHit,
		Loc:    p.Loc,
	})
}

func activateSpread(_ *Interpreter, n *Node, p Payload, out *Outcome) {
	angle := n.Config.SpreadAngle
	for i, sign := range [...]float64{-1, 1} {
		q := p
		if q.HasDir && angle != 0 {
			q.Dir = q.Dir.Rotate(sign * angle)
		}
		out.Fires = append(out.Fires, OutputFired{Node: n.ID, Output: i, Payload: q})
	}
}

func activateRepeat(_ *Interpreter, n *Node, p Payload, out *Outcome) {
	for range n.repeatCount() {
		out.Fires = append(out.Fires, OutputFired{Node: n.ID, Output: 0, Payload: p})
	}
}

func activateFilter(in *Interpreter, n *Node, p Payload, out *Outcome) {
	if !p.Has(n.Config.FilterRequire) {
		in.log.Trace("filter blocked payload", "node", n.ID.String())
		return
	}
	out.Fires = append(out.Fires, OutputFired{Node: n.ID, Output: 0, Payload: p})
}
