// Package typing implements the hero headline typewriter: it types a phrase
// one character at a time, holds it, deletes it, and moves on to the next
// phrase forever.
package typing

import (
	"fmt"
	"time"
)

// Config holds the typewriter timing.
type Config struct {
	Phrases     []string
	StartDelay  time.Duration // before the first keystroke
	TypeDelay   time.Duration // between typed characters
	DeleteDelay time.Duration // between deleted characters
	HoldDelay   time.Duration // full phrase on screen
	NextDelay   time.Duration // empty line before the next phrase
}

// DefaultConfig returns the headline settings.
func DefaultConfig() Config {
	return Config{
		Phrases: []string{
			"Detecting, Analyzing, and Responding to Real-World Threats",
			"Building Detection Rules for Enterprise Security",
			"Automating SOC Operations with Python",
			"Hunting Threats Across the Kill Chain",
			"Turning Logs into Actionable Intelligence",
		},
		StartDelay:  2000 * time.Millisecond,
		TypeDelay:   50 * time.Millisecond,
		DeleteDelay: 30 * time.Millisecond,
		HoldDelay:   2000 * time.Millisecond,
		NextDelay:   500 * time.Millisecond,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if len(c.Phrases) == 0 {
		return fmt.Errorf("phrases cannot be empty")
	}
	for i, p := range c.Phrases {
		if p == "" {
			return fmt.Errorf("phrase %d is empty", i)
		}
	}
	if c.TypeDelay <= 0 || c.DeleteDelay <= 0 {
		return fmt.Errorf("typeDelay and deleteDelay must be > 0, got %v and %v", c.TypeDelay, c.DeleteDelay)
	}
	if c.StartDelay < 0 || c.HoldDelay < 0 || c.NextDelay < 0 {
		return fmt.Errorf("delays must be >= 0")
	}
	return nil
}

// Typewriter is driven by Update with the elapsed frame time.
type Typewriter struct {
	cfg     Config
	phrases [][]rune

	phraseIndex int
	charIndex   int
	deleting    bool

	// 距离下一次按键的剩余时间
	wait time.Duration
}

// New creates a Typewriter that starts after cfg.StartDelay.
func New(cfg Config) *Typewriter {
	phrases := make([][]rune, len(cfg.Phrases))
	for i, p := range cfg.Phrases {
		phrases[i] = []rune(p)
	}
	return &Typewriter{
		cfg:     cfg,
		phrases: phrases,
		wait:    cfg.StartDelay,
	}
}

// Update advances the typewriter by dt, performing every keystroke that
// became due.
func (tw *Typewriter) Update(dt time.Duration) {
	if len(tw.phrases) == 0 {
		return
	}
	tw.wait -= dt
	for tw.wait <= 0 {
		tw.wait += tw.keystroke()
	}
}

// keystroke types or deletes one character and returns the delay before the
// next one.
func (tw *Typewriter) keystroke() time.Duration {
	phrase := tw.phrases[tw.phraseIndex]

	var delay time.Duration
	if tw.deleting {
		tw.charIndex--
		delay = tw.cfg.DeleteDelay
	} else {
		tw.charIndex++
		delay = tw.cfg.TypeDelay
	}

	switch {
	case !tw.deleting && tw.charIndex >= len(phrase):
		tw.charIndex = len(phrase)
		tw.deleting = true
		delay = tw.cfg.HoldDelay
	case tw.deleting && tw.charIndex <= 0:
		tw.charIndex = 0
		tw.deleting = false
		tw.phraseIndex = (tw.phraseIndex + 1) % len(tw.phrases)
		delay = tw.cfg.NextDelay
	}

	// 防止零延迟导致 Update 死循环
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay
}

// Text returns the currently visible part of the phrase.
func (tw *Typewriter) Text() string {
	if len(tw.phrases) == 0 {
		return ""
	}
	return string(tw.phrases[tw.phraseIndex][:tw.charIndex])
}

// Phrase returns the index of the current phrase.
func (tw *Typewriter) Phrase() int {
	return tw.phraseIndex
}

// Deleting reports whether the typewriter is erasing the current phrase.
func (tw *Typewriter) Deleting() bool {
	return tw.deleting
}
