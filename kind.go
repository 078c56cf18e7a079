package nodewire

import "fmt"

// Kind selects a node's behavior. The set is closed: every kind must be handled
// by pinCounts, the label tables and the interpreter.
type Kind uint8

const (
	KindOnShoot     Kind = iota // trigger source; fired by the player's shoot action
	KindSpawnBullet             // spawns a projectile; second output fires on despawn
	KindDealDamage              // damages the payload target
	KindSpread                  // re-fires both outputs, fanning the direction out
	KindRepeat                  // re-fires its output several times
	KindFilter                  // re-fires its output only when payload fields are present
	KindExplosion               // spawns an explosion at the payload location

	numKinds
)

// Kinds returns every defined kind in declaration order. Editor menus use it to
// list insertable nodes.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k < numKinds }

func (k Kind) String() string {
	switch k {
	case KindOnShoot:
		return "OnShoot"
	case KindSpawnBullet:
		return "SpawnBullet"
	case KindDealDamage:
		return "DealDamage"
	case KindSpread:
		return "Spread"
	case KindRepeat:
		return "Repeat"
	case KindFilter:
		return "Filter"
	case KindExplosion:
		return "Explosion"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Title is the human readable name shown on the node box.
func (k Kind) Title() string {
	switch k {
	case KindOnShoot:
		return "On shoot"
	case KindSpawnBullet:
		return "Spawn Bullet"
	case KindDealDamage:
		return "Dmg"
	case KindSpread:
		return "Spread"
	case KindRepeat:
		return "Repeat"
	case KindFilter:
		return "Filter"
	case KindExplosion:
		return "Spawn Explosion"
	default:
		return k.String()
	}
}

// pinCounts is the single source of truth for pin layout.
func (k Kind) pinCounts() (inputs, outputs int) {
	switch k {
	case KindOnShoot:
		return 0, 1
	case KindSpawnBullet:
		return 1, 2
	case KindSpread:
		return 1, 2
	case KindDealDamage, KindRepeat, KindFilter, KindExplosion:
		return 1, 1
	default:
		return 0, 0
	}
}

// Inputs returns the number of input pins a node of this kind exposes.
func (k Kind) Inputs() int {
	in, _ := k.pinCounts()
	return in
}

// Outputs returns the number of output pins a node of this kind exposes.
func (k Kind) Outputs() int {
	_, out := k.pinCounts()
	return out
}

// InputLabel returns the label drawn next to input pin i.
func (k Kind) InputLabel(i int) string {
	if i < 0 || i >= k.Inputs() {
		return ""
	}
	switch k {
	case KindSpawnBullet, KindExplosion:
		return "Spawn"
	case KindDealDamage:
		return "Target"
	case KindRepeat:
		return "Event"
	case KindFilter:
		return "In"
	default:
		return ""
	}
}

// OutputLabel returns the label drawn next to output pin i.
func (k Kind) OutputLabel(i int) string {
	if i < 0 || i >= k.Outputs() {
		return ""
	}
	switch k {
	case KindOnShoot, KindExplosion:
		return "Hit"
	case KindSpawnBullet:
		return [...]string{"Hit", "Despawned"}[i]
	case KindDealDamage:
		return "Fatal"
	case KindSpread:
		return [...]string{"Left", "Right"}[i]
	case KindRepeat:
		return "Event"
	case KindFilter:
		return "Pass"
	default:
		return ""
	}
}

// Output slots with a fixed meaning, used by gameplay collaborators to re-enter
// the graph when an effect completes.
const (
	OutputBulletHit       = 0
	OutputBulletDespawned = 1
	OutputDamageFatal     = 0
	OutputExplosionHit    = 0
)
