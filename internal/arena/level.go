package arena

// EntityKind says what a level placement spawns.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindWall
	KindBrownTank
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindWall:
		return "wall"
	case KindBrownTank:
		return "brown_tank"
	default:
		return "unknown"
	}
}

// Placement is one entity of a level layout.
type Placement struct {
	Kind EntityKind
	Pos  Vec2
}

// Level is a fixed, code-defined arena layout.
type Level struct {
	Name       string
	Placements []Placement
}

// Count returns how many placements of kind k the level has.
func (l Level) Count(k EntityKind) int {
	n := 0
	for _, p := range l.Placements {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func at(k EntityKind, x, y float64) Placement { return Placement{Kind: k, Pos: Vec2{x, y}} }

// DefaultCampaign returns the built-in level sequence.
func DefaultCampaign() []Level {
	return []Level{
		{
			Name: "Outpost",
			Placements: []Placement{
				at(KindPlayer, 0, 0),
				at(KindWall, 32, 64),
				at(KindWall, -32, 64),
				at(KindWall, 32, -64),
				at(KindBrownTank, -100, 100),
				at(KindBrownTank, 200, 150),
			},
		},
		{
			Name: "Divide",
			Placements: []Placement{
				at(KindPlayer, -400, -200),
				at(KindWall, 0, -128),
				at(KindWall, 0, -64),
				at(KindWall, 0, 0),
				at(KindWall, 0, 64),
				at(KindWall, 0, 128),
				at(KindWall, -200, 100),
				at(KindWall, 200, -100),
				at(KindBrownTank, 400, 200),
				at(KindBrownTank, 400, -200),
				at(KindBrownTank, 200, 150),
			},
		},
		{
			Name: "Crossfire",
			Placements: []Placement{
				at(KindPlayer, 0, -250),
				at(KindWall, -128, -100),
				at(KindWall, -64, -100),
				at(KindWall, 64, -100),
				at(KindWall, 128, -100),
				at(KindBrownTank, -300, 200),
				at(KindBrownTank, 0, 250),
				at(KindBrownTank, 300, 200),
				at(KindBrownTank, -500, 0),
			},
		},
	}
}
