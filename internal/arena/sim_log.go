package arena

import (
	"fmt"
	"strings"
)

// Event categories and keys recorded by the simulation.
const (
	CatBullet = "bullet"
	CatActor  = "actor"
	CatState  = "state"
	CatLevel  = "level"
	CatMove   = "move"

	KeySpawn        = "spawn"
	KeySpawnSkipped = "spawn_skipped"
	KeyRicochet     = "ricochet"
	KeyExpired      = "expired"
	KeyOutOfBounds  = "out_of_bounds"
	KeyBulletHit    = "bullet_hit"
	KeyActorHit     = "actor_hit"
	KeyDestroyed    = "destroyed"
	KeyTransition   = "transition"
	KeySetup        = "setup"
	KeyBlocked      = "blocked"
)

// SimLogEntry is one recorded event.
type SimLogEntry struct {
	Seq      int
	Tick     int
	Actor    string  // label e.g. "P", "E2", "B14", or "--" for global events
	Category string  // bullet, actor, state, level, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
	Pos      Vec2    // where it happened, for effects
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] B7   bullet    ricochet         face=left count=1
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. With a positive capacity the oldest
// entries are dropped once it fills; Seq keeps counting regardless.
type SimLog struct {
	entries  []SimLogEntry
	verbose  bool
	capacity int
	nextSeq  int
}

// NewSimLog creates an unbounded SimLog. If verbose is true, per-step
// movement entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// NewBoundedSimLog creates a SimLog that keeps at most capacity entries.
func NewBoundedSimLog(capacity int) *SimLog {
	return &SimLog{capacity: capacity}
}

func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64, pos Vec2) {
	sl.entries = append(sl.entries, SimLogEntry{
		Seq:      sl.nextSeq,
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
		Pos:      pos,
	})
	sl.nextSeq++
	if sl.capacity > 0 && len(sl.entries) > sl.capacity {
		drop := len(sl.entries) - sl.capacity
		sl.entries = append(sl.entries[:0], sl.entries[drop:]...)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64, pos Vec2) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal, pos)
}

func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// NextSeq is the sequence number the next entry will get.
func (sl *SimLog) NextSeq() int { return sl.nextSeq }

// Since returns entries with Seq >= seq that are still retained.
func (sl *SimLog) Since(seq int) []SimLogEntry {
	for i, e := range sl.entries {
		if e.Seq >= seq {
			return sl.entries[i:]
		}
	}
	return nil
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
