package ecs

import (
	"time"

	"github.com/phanxgames/nodewire"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// --- Components ---

// Position is an entity's world location.
var Position = donburi.NewComponentType[nodewire.Vec2]()

// BulletData moves a bullet from its spawn point along a straight line.
type BulletData struct {
	Dir   nodewire.Vec2
	travX *gween.Tween
	travY *gween.Tween
}

// Bullet marks projectile entities.
var Bullet = donburi.NewComponentType[BulletData]()

// SourceNode records the graph node that spawned an entity, so completion
// can be reported back to it.
var SourceNode = donburi.NewComponentType[nodewire.NodeID]()

// HealthData is a damageable target's remaining hit points.
type HealthData struct {
	HP float64
}

// Health marks damageable targets.
var Health = donburi.NewComponentType[HealthData]()

// ExplosionData is a short-lived blast ring.
type ExplosionData struct {
	Radius float64
	grow   *gween.Tween
}

// Explosion marks blast entities.
var Explosion = donburi.NewComponentType[ExplosionData]()

// --- Systems ---

// Firer is the part of nodewire.Engine gameplay needs to report back.
type Firer interface {
	Fire(node nodewire.NodeID, output int, payload nodewire.Payload)
}

// GameplayConfig tunes the gameplay systems.
type GameplayConfig struct {
	BulletSpeed     float64       // world units per second
	BulletLifetime  time.Duration // time until a bullet despawns
	Damage          float64
	HitRadius       float64 // bullet-target collision distance
	ExplosionRadius float64
	ExplosionTime   time.Duration
}

// DefaultGameplayConfig returns the tuning used by the example game.
func DefaultGameplayConfig() GameplayConfig {
	return GameplayConfig{
		BulletSpeed:     500,
		BulletLifetime:  time.Second,
		Damage:          1,
		HitRadius:       16,
		ExplosionRadius: 48,
		ExplosionTime:   300 * time.Millisecond,
	}
}

// Gameplay consumes world effects and reports effect completion to the graph.
type Gameplay struct {
	world donburi.World
	graph Firer
	cfg   GameplayConfig

	bullets    *donburi.Query
	targets    *donburi.Query
	explosions *donburi.Query

	doomed []donburi.Entity // reused removal buffer
}

// NewGameplay subscribes to EffectEventType on world. Completion firings go to
// graph.
func NewGameplay(world donburi.World, graph Firer, cfg GameplayConfig) *Gameplay {
	g := &Gameplay{
		world:      world,
		graph:      graph,
		cfg:        cfg,
		bullets:    donburi.NewQuery(filter.Contains(Bullet, Position, SourceNode)),
		targets:    donburi.NewQuery(filter.Contains(Health, Position)),
		explosions: donburi.NewQuery(filter.Contains(Explosion, Position)),
	}
	EffectEventType.Subscribe(world, g.handleEffect)
	return g
}

// SpawnTarget creates a damageable entity.
func (g *Gameplay) SpawnTarget(pos nodewire.Vec2, hp float64) donburi.Entity {
	e := g.world.Create(Position, Health)
	entry := g.world.Entry(e)
	Position.SetValue(entry, pos)
	Health.SetValue(entry, HealthData{HP: hp})
	return e
}

// Update delivers queued effects, then advances bullets and explosions by dt
// seconds.
func (g *Gameplay) Update(dt float32) {
	EffectEventType.ProcessEvents(g.world)
	g.updateBullets(dt)
	g.updateExplosions(dt)
}

// BulletCount returns the number of live bullets.
func (g *Gameplay) BulletCount() int { return g.bullets.Count(g.world) }

// EachBullet calls fn with every bullet's position and heading.
func (g *Gameplay) EachBullet(fn func(pos, dir nodewire.Vec2)) {
	g.bullets.Each(g.world, func(entry *donburi.Entry) {
		fn(*Position.Get(entry), Bullet.Get(entry).Dir)
	})
}

// EachTarget calls fn with every target.
func (g *Gameplay) EachTarget(fn func(e donburi.Entity, pos nodewire.Vec2, hp float64)) {
	g.targets.Each(g.world, func(entry *donburi.Entry) {
		fn(entry.Entity(), *Position.Get(entry), Health.Get(entry).HP)
	})
}

// EachExplosion calls fn with every live explosion's center and radius.
func (g *Gameplay) EachExplosion(fn func(pos nodewire.Vec2, radius float64)) {
	g.explosions.Each(g.world, func(entry *donburi.Entry) {
		fn(*Position.Get(entry), Explosion.Get(entry).Radius)
	})
}

func (g *Gameplay) handleEffect(w donburi.World, eff nodewire.Effect) {
	switch eff.Kind {
	case nodewire.EffectSpawnBullet:
		g.spawnBullet(eff)
	case nodewire.EffectDealDamage:
		g.dealDamage(eff)
	case nodewire.EffectExplosion:
		g.explode(eff)
	}
}

func (g *Gameplay) spawnBullet(eff nodewire.Effect) {
	if !eff.HasDir {
		return
	}
	life := float32(g.cfg.BulletLifetime.Seconds())
	end := eff.Loc.Add(eff.Dir.Scale(g.cfg.BulletSpeed * g.cfg.BulletLifetime.Seconds()))

	e := g.world.Create(Position, Bullet, SourceNode)
	entry := g.world.Entry(e)
	Position.SetValue(entry, eff.Loc)
	Bullet.SetValue(entry, BulletData{
		Dir:   eff.Dir,
		travX: gween.New(float32(eff.Loc.X), float32(end.X), life, ease.Linear),
		travY: gween.New(float32(eff.Loc.Y), float32(end.Y), life, ease.Linear),
	})
	SourceNode.SetValue(entry, eff.Node)
}

func (g *Gameplay) dealDamage(eff nodewire.Effect) {
	target := EntityOf(eff.Target)
	if !g.world.Valid(target) {
		return
	}
	entry := g.world.Entry(target)
	if !entry.HasComponent(Health) {
		return
	}
	g.hurt(entry, g.cfg.Damage, eff.CompletionPin())
}

func (g *Gameplay) explode(eff nodewire.Effect) {
	e := g.world.Create(Position, Explosion)
	entry := g.world.Entry(e)
	Position.SetValue(entry, eff.Loc)
	Explosion.SetValue(entry, ExplosionData{
		grow: gween.New(0, float32(g.cfg.ExplosionRadius), float32(g.cfg.ExplosionTime.Seconds()), ease.OutQuad),
	})

	var hit []donburi.Entity
	g.targets.Each(g.world, func(t *donburi.Entry) {
		if dist(*Position.Get(t), eff.Loc) <= g.cfg.ExplosionRadius {
			hit = append(hit, t.Entity())
		}
	})
	for _, t := range hit {
		g.graph.Fire(eff.Node, eff.Output, nodewire.Payload{}.WithLoc(eff.Loc).WithTarget(EntityRef(t)))
	}
}

// hurt applies damage and, on a kill, removes the target and fires pin.
func (g *Gameplay) hurt(entry *donburi.Entry, dmg float64, pin nodewire.OutPinID) {
	h := Health.Get(entry)
	h.HP -= dmg
	if h.HP > 0 {
		return
	}
	pos := *Position.Get(entry)
	ref := EntityRef(entry.Entity())
	g.world.Remove(entry.Entity())
	g.graph.Fire(pin.Node, pin.Output, nodewire.Payload{}.WithLoc(pos).WithTarget(ref))
}

func (g *Gameplay) updateBullets(dt float32) {
	g.doomed = g.doomed[:0]
	g.bullets.Each(g.world, func(entry *donburi.Entry) {
		b := Bullet.Get(entry)
		pos := Position.Get(entry)
		x, doneX := b.travX.Update(dt)
		y, doneY := b.travY.Update(dt)
		*pos = nodewire.Vec2{X: float64(x), Y: float64(y)}
		src := *SourceNode.Get(entry)

		if target, ok := g.hitTarget(*pos); ok {
			g.doomed = append(g.doomed, entry.Entity())
			g.graph.Fire(src, nodewire.OutputBulletHit,
				nodewire.Payload{}.WithLoc(*pos).WithDir(b.Dir).WithTarget(EntityRef(target)))
			return
		}
		if doneX && doneY {
			g.doomed = append(g.doomed, entry.Entity())
			g.graph.Fire(src, nodewire.OutputBulletDespawned, nodewire.Payload{}.WithLoc(*pos))
		}
	})
	for _, e := range g.doomed {
		g.world.Remove(e)
	}
}

func (g *Gameplay) hitTarget(pos nodewire.Vec2) (donburi.Entity, bool) {
	var (
		found  donburi.Entity
		hit    bool
		radius = g.cfg.HitRadius
	)
	g.targets.Each(g.world, func(t *donburi.Entry) {
		if !hit && dist(*Position.Get(t), pos) <= radius {
			found, hit = t.Entity(), true
		}
	})
	return found, hit
}

func (g *Gameplay) updateExplosions(dt float32) {
	g.doomed = g.doomed[:0]
	g.explosions.Each(g.world, func(entry *donburi.Entry) {
		x := Explosion.Get(entry)
		r, done := x.grow.Update(dt)
		x.Radius = float64(r)
		if done {
			g.doomed = append(g.doomed, entry.Entity())
		}
	})
	for _, e := range g.doomed {
		g.world.Remove(e)
	}
}

func dist(a, b nodewire.Vec2) float64 {
	return nodewire.Vec2{X: a.X - b.X, Y: a.Y - b.Y}.Len()
}
