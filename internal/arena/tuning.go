package arena

import "time"

// Tuning holds the fixed gameplay constants. The zero value is not usable;
// start from DefaultTuning.
type Tuning struct {
	ArenaHalfWidth  float64 `yaml:"arena_half_width"`
	ArenaHalfHeight float64 `yaml:"arena_half_height"`

	PlayerSpeed       float64 `yaml:"player_speed"`
	PlayerBulletLimit int     `yaml:"player_bullet_limit"`
	EnemyBulletLimit  int     `yaml:"enemy_bullet_limit"`

	BulletSpeed   float64 `yaml:"bullet_speed"`
	RicochetLimit int     `yaml:"ricochet_limit"`

	// How long the Win and Lose screens hold before the next round.
	TerminalDuration time.Duration `yaml:"terminal_duration"`

	PlayerHalf float64 `yaml:"player_half"`
	EnemyHalf  float64 `yaml:"enemy_half"`
	WallHalf   float64 `yaml:"wall_half"`
	BulletHalf float64 `yaml:"bullet_half"`
}

// DefaultTuning returns the stock constants of the game.
func DefaultTuning() Tuning {
	return Tuning{
		ArenaHalfWidth:    640,
		ArenaHalfHeight:   360,
		PlayerSpeed:       100,
		PlayerBulletLimit: 5,
		EnemyBulletLimit:  1,
		BulletSpeed:       150,
		RicochetLimit:     1,
		TerminalDuration:  4 * time.Second,
		PlayerHalf:        24,
		EnemyHalf:         24,
		WallHalf:          32,
		BulletHalf:        6,
	}
}

// Bounds returns the arena as a box centred on the origin.
func (t Tuning) Bounds() Box {
	return Box{Half: Vec2{t.ArenaHalfWidth, t.ArenaHalfHeight}}
}
