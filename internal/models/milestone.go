package models

import "time"

// Milestone is a server-computed achievement. The client never derives
// progress itself; it renders whatever the last fetch returned.
type Milestone struct {
	Name        string     `json:"name"`
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
	Progress    float64    `json:"progress"`
	Target      float64    `json:"target"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Unit        string     `json:"unit"`
}

// Fraction returns progress/target clamped to [0, 1] for display.
// The server already caps progress at target, but a raw ratio would
// overflow the bar if that ever changes.
func (m Milestone) Fraction() float64 {
	if m.Target <= 0 {
		return 0
	}
	f := m.Progress / m.Target
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// milestoneIcons maps milestone names to a fixed display glyph.
// Unknown names fall back to the trophy.
var milestoneIcons = map[string]string{
	"novice":         "◎",
	"gains":          "🔥",
	"destroyer":      "♛",
	"chest-pounder":  "🏋",
	"squat-king":     "♛",
	"earth-shaker":   "⚡",
	"shoulder-titan": "🎖",
	"wing-master":    "◎",
	"back-builder":   "🔥",
	"incline-ace":    "🎖",
	"dip-demon":      "🔥",
	"hinge-master":   "◎",
	"leg-press-lord": "♛",
	"century":        "🏆",
	"double-century": "🎖",
	"rep-king":       "⚡",
}

// Icon returns the display glyph for a milestone name.
func (m Milestone) Icon() string {
	if icon, ok := milestoneIcons[m.Name]; ok {
		return icon
	}
	return "🏆"
}
