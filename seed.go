package nodewire

// Seed names the nodes of the graph built by NewSeedGraph.
type Seed struct {
	Shoot  NodeID // OnShoot, the entry point for the shoot action
	Bullet NodeID // SpawnBullet wired to Shoot
	Damage NodeID // DealDamage wired to Bullet's hit output

	// Unwired nodes left on the canvas for the player to connect.
	SpareBullets [2]NodeID
	Spread       NodeID
}

// NewSeedGraph builds the starting graph every session opens with:
//
//	OnShoot --Hit--> SpawnBullet --Hit--> Dmg
//
// plus two spare SpawnBullet nodes and a Spread node. The Spread node has no
// angle, so both of its outputs re-fire the payload unchanged.
func NewSeedGraph() (*Graph, Seed) {
	g := NewGraph()
	var s Seed

	s.Shoot = g.InsertNode(KindOnShoot, Vec2{0, 0})
	s.Bullet = g.InsertNode(KindSpawnBullet, Vec2{150, 0})
	s.SpareBullets[0] = g.InsertNode(KindSpawnBullet, Vec2{150, 0})
	s.SpareBullets[1] = g.InsertNode(KindSpawnBullet, Vec2{150, 0})
	s.Spread = g.InsertNode(KindSpread, Vec2{-150, 0})
	s.Damage = g.InsertNode(KindDealDamage, Vec2{150, 100})

	g.Connect(OutPinID{Node: s.Shoot, Output: 0}, InPinID{Node: s.Bullet, Input: 0})
	g.Connect(OutPinID{Node: s.Bullet, Output: OutputBulletHit}, InPinID{Node: s.Damage, Input: 0})

	return g, s
}

// NewSeededEngine creates an engine over a fresh seed graph with its shoot
// trigger set.
func NewSeededEngine(cfg Config) (*Engine, Seed) {
	g, s := NewSeedGraph()
	e := NewEngine(g, cfg)
	e.SetShootTrigger(s.Shoot)
	return e, s
}
