package arena

import (
	"time"

	"github.com/yohamta/donburi"
)

// ColliderKind classifies what a collidable entity is for collision response.
type ColliderKind int

const (
	ColliderWall ColliderKind = iota
	ColliderPlayer
	ColliderBullet
	ColliderEnemy
)

func (k ColliderKind) String() string {
	switch k {
	case ColliderWall:
		return "wall"
	case ColliderPlayer:
		return "player"
	case ColliderBullet:
		return "bullet"
	case ColliderEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// isActor reports whether the collider is a tank that bullets can destroy.
func (k ColliderKind) isActor() bool {
	return k == ColliderPlayer || k == ColliderEnemy
}

// obstructs reports whether the collider blocks player movement.
func (k ColliderKind) obstructs() bool {
	return k == ColliderWall || k == ColliderEnemy
}

// SpriteKey is the visual identity handed to a presenter.
type SpriteKey int

const (
	SpritePlayer SpriteKey = iota
	SpriteBrownTank
	SpriteWall
	SpriteBullet
)

func (s SpriteKey) String() string {
	switch s {
	case SpritePlayer:
		return "player"
	case SpriteBrownTank:
		return "brown_tank"
	case SpriteWall:
		return "wall"
	case SpriteBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

type TransformData struct {
	Position Vec2
}

// HitboxData holds the half extents of the entity's collision box.
type HitboxData struct {
	Half Vec2
}

type ColliderData struct {
	Kind ColliderKind
}

type PlayerData struct {
	Speed float64
}

// FiringBudgetData caps how many live bullets an actor may own at once.
type FiringBudgetData struct {
	Max int
}

type BulletData struct {
	Velocity Vec2
}

// OwnerData is a back-reference to the actor that fired a bullet. The owner
// may be gone while the bullet is still in flight.
type OwnerData struct {
	Entity donburi.Entity
}

type RicochetData struct {
	Count int
	Limit int
}

// GameTimerData counts wall-clock time spent on a Win or Lose screen.
type GameTimerData struct {
	Duration time.Duration
	Elapsed  time.Duration
}

func (t *GameTimerData) Expired() bool { return t.Elapsed >= t.Duration }

type SpriteData struct {
	Key SpriteKey
}

var (
	Transform    = donburi.NewComponentType[TransformData]()
	Hitbox       = donburi.NewComponentType[HitboxData]()
	Collider     = donburi.NewComponentType[ColliderData]()
	Player       = donburi.NewComponentType[PlayerData]()
	FiringBudget = donburi.NewComponentType[FiringBudgetData]()
	Bullet       = donburi.NewComponentType[BulletData]()
	Owner        = donburi.NewComponentType[OwnerData]()
	Ricochet     = donburi.NewComponentType[RicochetData]()
	GameTimer    = donburi.NewComponentType[GameTimerData]()
	Sprite       = donburi.NewComponentType[SpriteData]()

	Enemy     = donburi.NewTag()
	BrownTank = donburi.NewTag()

	// Persistent entities survive level teardown.
	Persistent = donburi.NewTag()
	Camera     = donburi.NewTag()
)
