package arena

import "github.com/yohamta/donburi"

// canFire reports whether a living actor has budget for another bullet.
func (s *Sim) canFire(e *donburi.Entry) bool {
	if s.store.PendingDespawn(e.Entity()) {
		return false
	}
	return s.store.BulletsOwnedBy(e.Entity()) < FiringBudget.Get(e).Max
}

// firePlayer shoots at the cursor on the step the fire button goes down.
func (s *Sim) firePlayer() {
	if !s.input.Fire {
		return
	}
	p, ok := s.store.Player()
	if !ok || !s.canFire(p) {
		return
	}
	s.spawnBullet(p.Entity(), Transform.Get(p).Position, s.cursor)
}

// fireEnemies makes every brown tank with spare budget shoot at the player.
func (s *Sim) fireEnemies() {
	p, ok := s.store.Player()
	if !ok || s.store.PendingDespawn(p.Entity()) {
		return
	}
	target := Transform.Get(p).Position

	type shot struct {
		owner donburi.Entity
		from  Vec2
	}
	var shots []shot
	s.store.shooters.Each(s.store.world, func(e *donburi.Entry) {
		if s.canFire(e) {
			shots = append(shots, shot{owner: e.Entity(), from: Transform.Get(e).Position})
		}
	})
	for _, sh := range shots {
		s.spawnBullet(sh.owner, sh.from, target)
	}
}
