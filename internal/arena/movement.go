package arena

import (
	"fmt"

	"github.com/yohamta/donburi"
)

// movePlayer applies this step's directional input to the player. An axis
// is frozen when any wall or enemy the player overlaps blocks motion along
// it, so the player still slides along the free axis.
func (s *Sim) movePlayer() {
	p, ok := s.store.Player()
	if !ok {
		return
	}
	dir, ok := s.input.Direction().TryNormalize()
	if !ok {
		return
	}

	self := p.Entity()
	box := BoxOf(p)
	var blockX, blockY bool
	s.store.colliders.Each(s.store.world, func(e *donburi.Entry) {
		if e.Entity() == self || !Collider.Get(e).Kind.obstructs() {
			return
		}
		face, hit := Probe(box, BoxOf(e))
		if !hit {
			return
		}
		bx, by := face.blocks(dir)
		blockX = blockX || bx
		blockY = blockY || by
	})

	delta := dir.Scale(Player.Get(p).Speed * s.dt)
	if blockX {
		delta.X = 0
	}
	if blockY {
		delta.Y = 0
	}
	tr := Transform.Get(p)
	tr.Position = tr.Position.Add(delta)

	if blockX || blockY {
		s.log.AddVerbose(s.tick, "P", CatMove, KeyBlocked,
			fmt.Sprintf("x=%t y=%t", blockX, blockY), 0, tr.Position)
	}
}
