// Package scramble implements the heading hover effect: the displayed text
// dissolves into random glyphs and resolves, character by character, into
// the target text.
//
// Every character gets its own randomly placed window of frames. Before the
// window it shows the old character, inside it a flickering glyph from the
// alphabet, after it the new character.
package scramble

import (
	"errors"
	"fmt"

	"github.com/decker502/folio/pkg/frame"
)

var (
	// ErrSuperseded ends a job replaced by a newer Start on the same scrambler.
	ErrSuperseded = errors.New("scramble: job superseded")
	// ErrFrameCeiling ends a job that ran for Config.MaxFrames frames.
	ErrFrameCeiling = errors.New("scramble: frame ceiling reached")
)

// Host is the text-bearing target of a scramble job.
type Host interface {
	// Text returns the currently displayed text.
	Text() string
	// SetSegments replaces the displayed content.
	SetSegments(segs Segments)
	// Attached reports whether the host is still on screen. Writes to a
	// detached host are dropped.
	Attached() bool
}

// Rand is the randomness source for glyphs and timing windows.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Config holds the scramble tunables.
type Config struct {
	Alphabet    string
	MaxStart    int     // start frame in [0, MaxStart)
	MaxDuration int     // window length in [0, MaxDuration)
	Rerandomize float64 // per-frame chance an in-flight glyph changes
	MaxFrames   int     // hard stop for a job, 0 disables it
}

// DefaultConfig returns the hover scramble settings.
func DefaultConfig() Config {
	return Config{
		Alphabet:    `!<>-_\/[]{}—=+*^?#________`,
		MaxStart:    40,
		MaxDuration: 40,
		Rerandomize: 0.28,
		MaxFrames:   120,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if len([]rune(c.Alphabet)) == 0 {
		return fmt.Errorf("alphabet cannot be empty")
	}
	if c.MaxStart <= 0 {
		return fmt.Errorf("maxStart must be > 0, got %d", c.MaxStart)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("maxDuration must be > 0, got %d", c.MaxDuration)
	}
	if c.Rerandomize < 0 || c.Rerandomize > 1 {
		return fmt.Errorf("rerandomize must be between 0 and 1, got %v", c.Rerandomize)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("maxFrames must be >= 0, got %d", c.MaxFrames)
	}
	if c.MaxFrames > 0 && c.MaxFrames < c.MaxStart+c.MaxDuration {
		return fmt.Errorf("maxFrames %d is below the longest window %d", c.MaxFrames, c.MaxStart+c.MaxDuration)
	}
	return nil
}

// Transition is the schedule of one character position.
type Transition struct {
	From  string // "" past the end of the old text
	To    string // "" past the end of the target text
	Start int
	End   int

	glyph rune // 当前乱码字符，0 表示尚未分配
}

// Job is one scramble from the host's current text to a target text.
type Job struct {
	host        Host
	target      string
	transitions []Transition
	frame       int

	done chan struct{}
	err  error
}

// Done is closed exactly once, when the job ends.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err is nil for a job that resolved every character, ErrSuperseded or
// ErrFrameCeiling otherwise. It is only meaningful after Done is closed.
func (j *Job) Err() error {
	return j.err
}

// Transitions returns the per-character schedule.
func (j *Job) Transitions() []Transition {
	return j.transitions
}

// Frame returns the current frame counter.
func (j *Job) Frame() int {
	return j.frame
}

func (j *Job) finish(err error) {
	select {
	case <-j.done:
		return
	default:
	}
	j.err = err
	close(j.done)
}

// Scrambler runs at most one job at a time.
type Scrambler struct {
	cfg      Config
	alphabet []rune
	sched    frame.Scheduler
	rng      Rand

	job    *Job
	handle frame.Handle
}

// New creates a Scrambler. An empty alphabet or a non-positive window
// setting falls back to the DefaultConfig value.
func New(cfg Config, sched frame.Scheduler, rng Rand) *Scrambler {
	def := DefaultConfig()
	alphabet := []rune(cfg.Alphabet)
	if len(alphabet) == 0 {
		alphabet = []rune(def.Alphabet)
	}
	if cfg.MaxStart <= 0 {
		cfg.MaxStart = def.MaxStart
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = def.MaxDuration
	}
	return &Scrambler{
		cfg:      cfg,
		alphabet: alphabet,
		sched:    sched,
		rng:      rng,
	}
}

// Start replaces any running job with a new one scrambling host's current
// text into target. The first frame renders before Start returns.
func (s *Scrambler) Start(host Host, target string) *Job {
	oldText := []rune(host.Text())
	newText := []rune(target)

	length := len(oldText)
	if len(newText) > length {
		length = len(newText)
	}

	transitions := make([]Transition, length)
	for i := range transitions {
		start := s.rng.Intn(s.cfg.MaxStart)
		transitions[i] = Transition{
			From:  runeAt(oldText, i),
			To:    runeAt(newText, i),
			Start: start,
			End:   start + s.rng.Intn(s.cfg.MaxDuration),
		}
	}

	s.cancel()

	job := &Job{
		host:        host,
		target:      target,
		transitions: transitions,
		done:        make(chan struct{}),
	}
	s.job = job
	s.step()
	return job
}

// Stop ends the running job, if any, with ErrSuperseded.
func (s *Scrambler) Stop() {
	s.cancel()
}

// Running returns the in-flight job, or nil.
func (s *Scrambler) Running() *Job {
	return s.job
}

func (s *Scrambler) cancel() {
	if s.handle != 0 {
		s.sched.Cancel(s.handle)
		s.handle = 0
	}
	if s.job != nil {
		s.job.finish(ErrSuperseded)
		s.job = nil
	}
}

// step renders the current frame of the running job.
func (s *Scrambler) step() {
	s.handle = 0
	job := s.job
	if job == nil {
		return
	}

	if s.cfg.MaxFrames > 0 && job.frame >= s.cfg.MaxFrames {
		if job.host.Attached() {
			job.host.SetSegments(Segments{{Text: job.target}})
		}
		s.job = nil
		job.finish(ErrFrameCeiling)
		return
	}

	segs := make(Segments, 0, 4)
	complete := 0
	for i := range job.transitions {
		tr := &job.transitions[i]
		switch {
		case job.frame >= tr.End:
			complete++
			segs = segs.appendPlain(tr.To)
		case job.frame >= tr.Start:
			if tr.glyph == 0 || s.rng.Float64() < s.cfg.Rerandomize {
				tr.glyph = s.randomGlyph()
			}
			segs = append(segs, Segment{Text: string(tr.glyph), Accent: true})
		default:
			segs = segs.appendPlain(tr.From)
		}
	}

	// 宿主已移除时丢弃本次写入
	if job.host.Attached() {
		job.host.SetSegments(segs)
	}

	if complete == len(job.transitions) {
		s.job = nil
		job.finish(nil)
		return
	}

	job.frame++
	s.handle = s.sched.Request(s.step)
}

func (s *Scrambler) randomGlyph() rune {
	return s.alphabet[s.rng.Intn(len(s.alphabet))]
}

func runeAt(r []rune, i int) string {
	if i < len(r) {
		return string(r[i])
	}
	return ""
}
