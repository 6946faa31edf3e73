package arena

import (
	"fmt"

	"github.com/yohamta/donburi"
)

// EntityInfo is a read-only snapshot of one collidable entity.
type EntityInfo struct {
	Entity  donburi.Entity
	Label   string
	Kind    ColliderKind
	Pos     Vec2
	Half    Vec2
	Pending bool

	// Bullets only.
	Velocity      Vec2
	Owner         string
	Ricochets     int
	RicochetLimit int

	// Tanks only.
	LiveBullets int
	BulletLimit int
}

// pickPriority orders overlapping hits: bullets over tanks over walls.
func pickPriority(k ColliderKind) int {
	switch k {
	case ColliderBullet:
		return 3
	case ColliderPlayer, ColliderEnemy:
		return 2
	default:
		return 1
	}
}

// PickAt returns the collidable entity whose box contains p.
func (s *Sim) PickAt(p Vec2) (donburi.Entity, bool) {
	best, bestPri := donburi.Null, 0
	s.store.colliders.Each(s.store.world, func(e *donburi.Entry) {
		if !BoxOf(e).Contains(p) {
			return
		}
		if pri := pickPriority(Collider.Get(e).Kind); pri > bestPri {
			best, bestPri = e.Entity(), pri
		}
	})
	return best, bestPri > 0
}

// Inspect snapshots e. It reports false once e is gone.
func (s *Sim) Inspect(e donburi.Entity) (EntityInfo, bool) {
	if !s.store.Alive(e) {
		return EntityInfo{}, false
	}
	entry := s.store.world.Entry(e)
	if !entry.HasComponent(Collider) {
		return EntityInfo{}, false
	}
	info := EntityInfo{
		Entity:  e,
		Label:   s.Label(e),
		Kind:    Collider.Get(entry).Kind,
		Pos:     Transform.Get(entry).Position,
		Half:    Hitbox.Get(entry).Half,
		Pending: s.store.PendingDespawn(e),
	}
	if entry.HasComponent(Bullet) {
		info.Velocity = Bullet.Get(entry).Velocity
		info.Owner = s.Label(Owner.Get(entry).Entity)
		r := Ricochet.Get(entry)
		info.Ricochets, info.RicochetLimit = r.Count, r.Limit
	}
	if entry.HasComponent(FiringBudget) {
		info.LiveBullets = s.store.BulletsOwnedBy(e)
		info.BulletLimit = FiringBudget.Get(entry).Max
	}
	return info, true
}

// Lines renders the snapshot as short display lines.
func (i EntityInfo) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s  %s", i.Label, i.Kind),
		fmt.Sprintf("pos   %.1f, %.1f", i.Pos.X, i.Pos.Y),
		fmt.Sprintf("half  %.0f x %.0f", i.Half.X, i.Half.Y),
	}
	switch i.Kind {
	case ColliderBullet:
		lines = append(lines,
			fmt.Sprintf("vel   %.1f, %.1f", i.Velocity.X, i.Velocity.Y),
			fmt.Sprintf("owner %s", i.Owner),
			fmt.Sprintf("rico  %d/%d", i.Ricochets, i.RicochetLimit),
		)
	case ColliderPlayer, ColliderEnemy:
		lines = append(lines, fmt.Sprintf("ammo  %d/%d live", i.LiveBullets, i.BulletLimit))
	}
	if i.Pending {
		lines = append(lines, "(despawning)")
	}
	return lines
}
