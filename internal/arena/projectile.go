package arena

import (
	"fmt"
	"math"

	"github.com/yohamta/donburi"
)

// A bullet cannot hurt its owner until it has ricocheted this many times.
const graceRicochets = 1

// spawnBullet fires a bullet from from toward target on behalf of owner.
// Aiming at the firer's own position spawns nothing.
func (s *Sim) spawnBullet(owner donburi.Entity, from, target Vec2) (donburi.Entity, bool) {
	dir, ok := target.Sub(from).TryNormalize()
	if !ok {
		s.log.Add(s.tick, s.Label(owner), CatBullet, KeySpawnSkipped, "zero-length aim", 0, from)
		return donburi.Null, false
	}
	e := s.store.SpawnBullet(from, dir.Scale(s.tuning.BulletSpeed), owner)
	label := s.assignLabel(e, "B")
	s.log.Add(s.tick, label, CatBullet, KeySpawn, "owner="+s.Label(owner), 0, from)
	return e, true
}

func (s *Sim) advanceBullets() {
	s.store.bullets.Each(s.store.world, func(e *donburi.Entry) {
		tr := Transform.Get(e)
		tr.Position = tr.Position.Add(Bullet.Get(e).Velocity.Scale(s.dt))
	})
}

// cleanupBullets removes bullets that left the arena.
func (s *Sim) cleanupBullets() {
	hw, hh := s.tuning.ArenaHalfWidth, s.tuning.ArenaHalfHeight
	s.store.bullets.Each(s.store.world, func(e *donburi.Entry) {
		pos := Transform.Get(e).Position
		if math.Abs(pos.X) > hw || math.Abs(pos.Y) > hh {
			s.despawnBullet(e.Entity(), KeyOutOfBounds, "", pos)
		}
	})
}

type body struct {
	entity donburi.Entity
	kind   ColliderKind
	box    Box
}

// resolveBulletCollisions checks every bullet against every other collider.
// Bodies are snapshotted first so the pass never mutates what it iterates.
func (s *Sim) resolveBulletCollisions() {
	var bodies []body
	var bullets []*donburi.Entry
	s.store.colliders.Each(s.store.world, func(e *donburi.Entry) {
		kind := Collider.Get(e).Kind
		bodies = append(bodies, body{entity: e.Entity(), kind: kind, box: BoxOf(e)})
		if kind == ColliderBullet {
			bullets = append(bullets, e)
		}
	})

	for _, b := range bullets {
		self := b.Entity()
		owner := Owner.Get(b).Entity
		ric := Ricochet.Get(b)
		vel := &Bullet.Get(b).Velocity
		box := BoxOf(b)

		var reflectX, reflectY bool
		for _, o := range bodies {
			if o.entity == self {
				continue
			}
			face, hit := Probe(box, o.box)
			if !hit {
				continue
			}
			switch {
			case o.kind == ColliderBullet:
				s.despawnBullet(o.entity, KeyBulletHit, "by="+s.Label(self), o.box.Center)
			case o.kind.isActor():
				if o.entity == owner && ric.Count < graceRicochets {
					continue
				}
				s.despawnBullet(self, KeyActorHit, "target="+s.Label(o.entity), box.Center)
				s.destroyActor(o.entity, self, o.box.Center)
			case o.kind == ColliderWall:
				// Only faces the bullet is travelling into reflect it.
				rx, ry := face.blocks(*vel)
				reflectX = reflectX || rx
				reflectY = reflectY || ry
			}
		}

		if (!reflectX && !reflectY) || s.store.PendingDespawn(self) {
			continue
		}
		if ric.Count >= ric.Limit {
			s.despawnBullet(self, KeyExpired, fmt.Sprintf("count=%d", ric.Count), box.Center)
			continue
		}
		if reflectX {
			vel.X = -vel.X
		}
		if reflectY {
			vel.Y = -vel.Y
		}
		ric.Count++
		assertf(ric.Count <= ric.Limit, "bullet %s ricochet count %d exceeds limit %d", s.Label(self), ric.Count, ric.Limit)
		s.log.Add(s.tick, s.Label(self), CatBullet, KeyRicochet,
			fmt.Sprintf("x=%t y=%t count=%d", reflectX, reflectY, ric.Count), float64(ric.Count), box.Center)
	}
}

func (s *Sim) despawnBullet(e donburi.Entity, key, detail string, pos Vec2) {
	if s.store.PendingDespawn(e) {
		return
	}
	s.store.Despawn(e)
	s.log.Add(s.tick, s.Label(e), CatBullet, key, detail, 0, pos)
}

func (s *Sim) destroyActor(e, by donburi.Entity, pos Vec2) {
	if s.store.PendingDespawn(e) {
		return
	}
	s.store.Despawn(e)
	s.log.Add(s.tick, s.Label(e), CatActor, KeyDestroyed, "by="+s.Label(by), 0, pos)
	s.logger.Debug("actor destroyed", "actor", s.Label(e), "bullet", s.Label(by), "tick", s.tick)
}
