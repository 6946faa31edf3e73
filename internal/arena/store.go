package arena

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Store is the entity store shared by every system. Removal is deferred:
// Despawn only queues an entity, and Commit applies the queue in one go so
// no system sees an entity vanish partway through a step.
type Store struct {
	world   donburi.World
	tuning  Tuning
	pending map[donburi.Entity]struct{}
	queue   []donburi.Entity

	colliders *donburi.Query
	bullets   *donburi.Query
	players   *donburi.Query
	enemies   *donburi.Query
	shooters  *donburi.Query
	timers    *donburi.Query
	drawables *donburi.Query
	transient *donburi.Query
}

// NewStore creates an empty store sized by the given tuning.
func NewStore(t Tuning) *Store {
	return &Store{
		world:     donburi.NewWorld(),
		tuning:    t,
		pending:   make(map[donburi.Entity]struct{}),
		colliders: donburi.NewQuery(filter.Contains(Transform, Hitbox, Collider)),
		bullets:   donburi.NewQuery(filter.Contains(Transform, Hitbox, Bullet, Ricochet, Owner)),
		players:   donburi.NewQuery(filter.Contains(Player, Transform, Hitbox)),
		enemies:   donburi.NewQuery(filter.Contains(Enemy)),
		shooters:  donburi.NewQuery(filter.Contains(BrownTank, Transform, FiringBudget)),
		timers:    donburi.NewQuery(filter.Contains(GameTimer)),
		drawables: donburi.NewQuery(filter.Contains(Transform, Hitbox, Sprite)),
		transient: donburi.NewQuery(filter.Not(filter.Contains(Persistent))),
	}
}

// World exposes the underlying donburi world for read-only inspection.
func (s *Store) World() donburi.World { return s.world }

func (s *Store) spawnBody(kind ColliderKind, sprite SpriteKey, pos Vec2, half float64, extra ...donburi.IComponentType) *donburi.Entry {
	comps := append([]donburi.IComponentType{Transform, Hitbox, Collider, Sprite}, extra...)
	e := s.world.Entry(s.world.Create(comps...))
	Transform.SetValue(e, TransformData{Position: pos})
	Hitbox.SetValue(e, HitboxData{Half: Vec2{half, half}})
	Collider.SetValue(e, ColliderData{Kind: kind})
	Sprite.SetValue(e, SpriteData{Key: sprite})
	return e
}

// SpawnPlayer creates the player tank. A second player that is not queued
// for removal is a defect.
func (s *Store) SpawnPlayer(pos Vec2) donburi.Entity {
	live := 0
	s.players.Each(s.world, func(e *donburi.Entry) {
		if !s.PendingDespawn(e.Entity()) {
			live++
		}
	})
	assertf(live == 0, "spawning player while %d already exist", live)
	e := s.spawnBody(ColliderPlayer, SpritePlayer, pos, s.tuning.PlayerHalf, Player, FiringBudget)
	Player.SetValue(e, PlayerData{Speed: s.tuning.PlayerSpeed})
	FiringBudget.SetValue(e, FiringBudgetData{Max: s.tuning.PlayerBulletLimit})
	return e.Entity()
}

// SpawnBrownTank creates a stationary enemy that fires at the player.
func (s *Store) SpawnBrownTank(pos Vec2) donburi.Entity {
	e := s.spawnBody(ColliderEnemy, SpriteBrownTank, pos, s.tuning.EnemyHalf, Enemy, BrownTank, FiringBudget)
	FiringBudget.SetValue(e, FiringBudgetData{Max: s.tuning.EnemyBulletLimit})
	return e.Entity()
}

func (s *Store) SpawnWall(pos Vec2) donburi.Entity {
	return s.spawnBody(ColliderWall, SpriteWall, pos, s.tuning.WallHalf).Entity()
}

// SpawnBullet creates a bullet without any aim checks; callers go through
// spawnBullet on the simulation for the firing contract.
func (s *Store) SpawnBullet(pos, vel Vec2, owner donburi.Entity) donburi.Entity {
	e := s.spawnBody(ColliderBullet, SpriteBullet, pos, s.tuning.BulletHalf, Bullet, Owner, Ricochet)
	Bullet.SetValue(e, BulletData{Velocity: vel})
	Owner.SetValue(e, OwnerData{Entity: owner})
	Ricochet.SetValue(e, RicochetData{Limit: s.tuning.RicochetLimit})
	return e.Entity()
}

func (s *Store) SpawnTimer(d time.Duration) donburi.Entity {
	e := s.world.Entry(s.world.Create(GameTimer))
	GameTimer.SetValue(e, GameTimerData{Duration: d})
	return e.Entity()
}

// SpawnCamera creates the persistent view anchor that teardown never removes.
func (s *Store) SpawnCamera() donburi.Entity {
	return s.world.Create(Camera, Transform, Persistent)
}

// Alive reports whether the handle still refers to a live entity. Entities
// queued for removal are alive until Commit.
func (s *Store) Alive(e donburi.Entity) bool {
	return e != donburi.Null && s.world.Valid(e)
}

// Despawn queues e for removal at the next Commit. Repeated calls are
// harmless.
func (s *Store) Despawn(e donburi.Entity) {
	if !s.Alive(e) {
		return
	}
	if _, ok := s.pending[e]; ok {
		return
	}
	s.pending[e] = struct{}{}
	s.queue = append(s.queue, e)
}

// PendingDespawn reports whether e is queued for removal.
func (s *Store) PendingDespawn(e donburi.Entity) bool {
	_, ok := s.pending[e]
	return ok
}

// Commit removes every queued entity and returns how many were removed.
func (s *Store) Commit() int {
	n := 0
	for _, e := range s.queue {
		if s.world.Valid(e) {
			s.world.Remove(e)
			n++
		}
	}
	s.queue = s.queue[:0]
	clear(s.pending)
	return n
}

// Teardown queues every entity that is not persistent infrastructure.
func (s *Store) Teardown() {
	var doomed []donburi.Entity
	s.transient.Each(s.world, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	for _, e := range doomed {
		s.Despawn(e)
	}
}

// Player returns the player entry, if one exists.
func (s *Store) Player() (*donburi.Entry, bool) {
	return s.players.First(s.world)
}

func (s *Store) EnemyCount() int { return s.enemies.Count(s.world) }

func (s *Store) BulletCount() int { return s.bullets.Count(s.world) }

// BulletsOwnedBy counts live bullets fired by owner, including ones queued
// for removal this step.
func (s *Store) BulletsOwnedBy(owner donburi.Entity) int {
	n := 0
	s.bullets.Each(s.world, func(e *donburi.Entry) {
		if Owner.Get(e).Entity == owner {
			n++
		}
	})
	return n
}

// Timer returns the game timer that is not queued for removal, if any.
func (s *Store) Timer() (*donburi.Entry, bool) {
	var found *donburi.Entry
	s.timers.Each(s.world, func(e *donburi.Entry) {
		if found == nil && !s.PendingDespawn(e.Entity()) {
			found = e
		}
	})
	return found, found != nil
}

// EnemyPositions returns where every enemy not queued for removal stands.
func (s *Store) EnemyPositions() []Vec2 {
	var out []Vec2
	s.shooters.Each(s.world, func(e *donburi.Entry) {
		if !s.PendingDespawn(e.Entity()) {
			out = append(out, Transform.Get(e).Position)
		}
	})
	return out
}

// TimerCount counts game timers that are not queued for removal.
func (s *Store) TimerCount() int {
	n := 0
	s.timers.Each(s.world, func(e *donburi.Entry) {
		if !s.PendingDespawn(e.Entity()) {
			n++
		}
	})
	return n
}

// BoxOf returns the collision box of an entry that has Transform and Hitbox.
func BoxOf(e *donburi.Entry) Box {
	return Box{Center: Transform.Get(e).Position, Half: Hitbox.Get(e).Half}
}

// Walls returns the boxes of every wall.
func (s *Store) Walls() []Box {
	var out []Box
	s.colliders.Each(s.world, func(e *donburi.Entry) {
		if Collider.Get(e).Kind == ColliderWall {
			out = append(out, BoxOf(e))
		}
	})
	return out
}
