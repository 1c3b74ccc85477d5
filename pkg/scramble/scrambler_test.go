package scramble

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/decker502/folio/pkg/frame"
)

// spyHost 记录每次写入
type spyHost struct {
	text     string
	detached bool
	writes   []Segments
}

func (h *spyHost) Text() string { return h.text }

func (h *spyHost) SetSegments(segs Segments) {
	cp := make(Segments, len(segs))
	copy(cp, segs)
	h.writes = append(h.writes, cp)
	h.text = segs.Plain()
}

func (h *spyHost) Attached() bool { return !h.detached }

// fixedRand 总是返回最大值，使每个字符窗口都最晚结束
type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.99 }
func (fixedRand) Intn(n int) int   { return n - 1 }

func isDone(j *Job) bool {
	select {
	case <-j.Done():
		return true
	default:
		return false
	}
}

// runUntilDone 推进帧直到任务结束，返回推进的帧数
func runUntilDone(t *testing.T, loop *frame.Loop, job *Job, limit int) int {
	t.Helper()
	frames := 0
	for !isDone(job) {
		if frames >= limit {
			t.Fatalf("job not done after %d frames", limit)
		}
		loop.Flush()
		frames++
	}
	return frames
}

// TestStartPadsShorterText 测试较短文本以空字符补齐
func TestStartPadsShorterText(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, rand.New(rand.NewSource(1)))
	host := &spyHost{text: "AB"}

	job := s.Start(host, "ABC")

	trs := job.Transitions()
	if len(trs) != 3 {
		t.Fatalf("got %d transitions, want 3", len(trs))
	}
	if trs[2].From != "" || trs[2].To != "C" {
		t.Errorf("transition 2 = %q -> %q, want \"\" -> \"C\"", trs[2].From, trs[2].To)
	}
	for i, tr := range trs {
		if tr.Start < 0 || tr.Start >= 40 {
			t.Errorf("transition %d start %d not in [0, 40)", i, tr.Start)
		}
		if tr.End < tr.Start || tr.End-tr.Start >= 40 {
			t.Errorf("transition %d window [%d, %d] invalid", i, tr.Start, tr.End)
		}
	}

	t.Run("目标较短", func(t *testing.T) {
		host := &spyHost{text: "HELLO"}
		job := s.Start(host, "HI")
		trs := job.Transitions()
		if len(trs) != 5 {
			t.Fatalf("got %d transitions, want 5", len(trs))
		}
		if trs[4].From != "O" || trs[4].To != "" {
			t.Errorf("transition 4 = %q -> %q, want \"O\" -> \"\"", trs[4].From, trs[4].To)
		}
		runUntilDone(t, loop, job, 80)
		if host.text != "HI" {
			t.Errorf("final text = %q, want %q", host.text, "HI")
		}
	})
}

// TestJobCompletesOnceWithinBound 测试任务在 80 帧内完成且只完成一次
func TestJobCompletesOnceWithinBound(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		loop := frame.NewLoop()
		s := New(DefaultConfig(), loop, rand.New(rand.NewSource(seed)))
		host := &spyHost{text: "AB"}

		job := s.Start(host, "ABC")
		frames := runUntilDone(t, loop, job, 80)

		if job.Err() != nil {
			t.Fatalf("seed %d: Err() = %v, want nil", seed, job.Err())
		}
		if host.text != "ABC" {
			t.Fatalf("seed %d: final text = %q, want %q", seed, host.text, "ABC")
		}

		writes := len(host.writes)
		for i := 0; i < 10; i++ {
			loop.Flush()
		}
		if len(host.writes) != writes {
			t.Fatalf("seed %d: %d writes after completion", seed, len(host.writes)-writes)
		}
		if loop.Pending() != 0 {
			t.Fatalf("seed %d: Pending() = %d after completion", seed, loop.Pending())
		}
		if s.Running() != nil {
			t.Fatalf("seed %d: Running() != nil after completion", seed)
		}
		if frames > 80 {
			t.Fatalf("seed %d: took %d frames", seed, frames)
		}
	}
}

// TestWorstCaseFrameCount 测试最晚窗口的帧数
func TestWorstCaseFrameCount(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, fixedRand{})
	host := &spyHost{text: "AB"}

	job := s.Start(host, "ABC")
	frames := runUntilDone(t, loop, job, 80)

	// start=39, end=78：同步渲染第 0 帧，之后 78 次 Flush
	if frames != 78 {
		t.Errorf("frames = %d, want 78", frames)
	}
	if len(host.writes) != 79 {
		t.Errorf("writes = %d, want 79", len(host.writes))
	}
}

// TestTransitionPhases 测试每个字符的三个阶段
func TestTransitionPhases(t *testing.T) {
	loop := frame.NewLoop()
	cfg := DefaultConfig()
	cfg.Alphabet = "#"
	s := New(cfg, loop, rand.New(rand.NewSource(42)))
	host := &spyHost{text: "HELLO"}

	job := s.Start(host, "WORLD")
	runUntilDone(t, loop, job, 80)

	from, to := []rune("HELLO"), []rune("WORLD")
	for k, w := range host.writes {
		out := []rune(w.Plain())
		if len(out) != 5 {
			t.Fatalf("frame %d: output %q has %d runes, want 5", k, string(out), len(out))
		}
		for i, tr := range job.Transitions() {
			switch {
			case k >= tr.End:
				if out[i] != to[i] {
					t.Errorf("frame %d index %d = %q, want resolved %q", k, i, out[i], to[i])
				}
			case k >= tr.Start:
				if out[i] != '#' {
					t.Errorf("frame %d index %d = %q, want glyph", k, i, out[i])
				}
			default:
				if out[i] != from[i] {
					t.Errorf("frame %d index %d = %q, want original %q", k, i, out[i], from[i])
				}
			}
		}
	}
}

// countingRand 包装真实随机源，统计抽取乱码字符的次数
// 窗口长度用 Intn(40)，乱码字符用 Intn(len(alphabet))，两者以 n 区分
type countingRand struct {
	*rand.Rand
	alphabetLen int
	glyphDraws  int
}

func (r *countingRand) Intn(n int) int {
	if n == r.alphabetLen {
		r.glyphDraws++
	}
	return r.Rand.Intn(n)
}

// decodeFrame 将一次写入拆成逐字符的内容和强调标记
// 要求新旧文本等长，这样第 i 个字符对应第 i 个过渡
func decodeFrame(segs Segments) ([]rune, []bool) {
	var runes []rune
	var accent []bool
	for _, seg := range segs {
		for _, r := range seg.Text {
			runes = append(runes, r)
			accent = append(accent, seg.Accent)
		}
	}
	return runes, accent
}

// TestGlyphStableWithoutRerandomize 测试重抽概率为 0 时乱码字符一经分配保持不变
func TestGlyphStableWithoutRerandomize(t *testing.T) {
	for _, seed := range []int64{1, 3, 42} {
		loop := frame.NewLoop()
		cfg := DefaultConfig()
		cfg.Alphabet = "#$%&*+?"
		cfg.Rerandomize = 0
		rng := &countingRand{Rand: rand.New(rand.NewSource(seed)), alphabetLen: 7}
		s := New(cfg, loop, rng)
		host := &spyHost{text: "HELLO WORLD"}

		job := s.Start(host, "GOODBYE ALL")
		runUntilDone(t, loop, job, 80)

		assigned := map[int]rune{}
		for k, w := range host.writes {
			runes, accent := decodeFrame(w)
			if len(runes) != 11 {
				t.Fatalf("seed %d frame %d: %d runes, want 11", seed, k, len(runes))
			}
			for i, r := range runes {
				if !accent[i] {
					continue
				}
				if prev, ok := assigned[i]; ok && prev != r {
					t.Errorf("seed %d frame %d index %d: glyph changed %q -> %q", seed, k, i, prev, r)
				}
				assigned[i] = r
			}
		}

		// 每个进入过乱码阶段的字符只抽取一次
		if rng.glyphDraws != len(assigned) {
			t.Errorf("seed %d: %d glyph draws for %d scrambled indexes", seed, rng.glyphDraws, len(assigned))
		}
		if job.Err() != nil {
			t.Errorf("seed %d: Err() = %v, want nil", seed, job.Err())
		}
	}
}

// TestGlyphRedrawnEveryFrame 测试重抽概率为 1 时每帧都重新抽取乱码字符
func TestGlyphRedrawnEveryFrame(t *testing.T) {
	loop := frame.NewLoop()
	cfg := DefaultConfig()
	cfg.Alphabet = "#$%&*+?"
	cfg.Rerandomize = 1
	rng := &countingRand{Rand: rand.New(rand.NewSource(5)), alphabetLen: 7}
	s := New(cfg, loop, rng)
	host := &spyHost{text: "HELLO WORLD"}

	job := s.Start(host, "GOODBYE ALL")
	draws := []int{rng.glyphDraws}
	for !isDone(job) {
		if len(draws) > 80 {
			t.Fatal("job not done after 80 frames")
		}
		loop.Flush()
		draws = append(draws, rng.glyphDraws)
	}

	if len(host.writes) != len(draws) {
		t.Fatalf("%d writes for %d frames", len(host.writes), len(draws))
	}
	total := 0
	for k, w := range host.writes {
		delta := draws[k]
		if k > 0 {
			delta -= draws[k-1]
		}
		// 本帧每个乱码字符恰好抽取一次
		if delta != w.AccentCount() {
			t.Errorf("frame %d: %d glyph draws, want %d (one per scrambled index)", k, delta, w.AccentCount())
		}
		total += w.AccentCount()
	}
	if total == 0 {
		t.Error("no frame showed a scrambled glyph")
	}
}

// TestNewFallsBackOnInvalidWindows 测试窗口参数非法时回退默认值而不是 panic
func TestNewFallsBackOnInvalidWindows(t *testing.T) {
	tests := []struct {
		name        string
		maxStart    int
		maxDuration int
	}{
		{"maxStart 为 0", 0, 40},
		{"maxDuration 为 0", 40, 0},
		{"均为负数", -1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := frame.NewLoop()
			cfg := DefaultConfig()
			cfg.MaxStart = tt.maxStart
			cfg.MaxDuration = tt.maxDuration
			s := New(cfg, loop, rand.New(rand.NewSource(1)))

			job := s.Start(&spyHost{text: "abc"}, "xyz")
			for i, tr := range job.Transitions() {
				if tr.Start < 0 || tr.Start >= 40 || tr.End-tr.Start >= 40 {
					t.Errorf("transition %d window [%d, %d] outside the default range", i, tr.Start, tr.End)
				}
			}
			runUntilDone(t, loop, job, 80)
		})
	}
}

// TestStartCancelsPreviousJob 测试新任务取消旧任务的后续帧
func TestStartCancelsPreviousJob(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, fixedRand{})
	first := &spyHost{text: "OLD TEXT"}

	job1 := s.Start(first, "NEW TEXT")
	loop.Flush()
	loop.Flush()
	firstWrites := len(first.writes)

	second := &spyHost{text: "OTHER"}
	job2 := s.Start(second, "THING")

	if !isDone(job1) {
		t.Fatal("first job not done after being replaced")
	}
	if !errors.Is(job1.Err(), ErrSuperseded) {
		t.Errorf("first job Err() = %v, want ErrSuperseded", job1.Err())
	}

	runUntilDone(t, loop, job2, 80)

	if len(first.writes) != firstWrites {
		t.Errorf("first host got %d writes after replacement", len(first.writes)-firstWrites)
	}
	if job2.Err() != nil {
		t.Errorf("second job Err() = %v, want nil", job2.Err())
	}
}

// TestRestartSameHost 测试同一宿主重复触发
func TestRestartSameHost(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, rand.New(rand.NewSource(5)))
	host := &spyHost{text: "Threat Hunting"}

	var jobs []*Job
	for i := 0; i < 5; i++ {
		jobs = append(jobs, s.Start(host, "Threat Hunting"))
		loop.Flush()
	}
	last := jobs[len(jobs)-1]
	runUntilDone(t, loop, last, 80)

	for i, j := range jobs[:len(jobs)-1] {
		if !errors.Is(j.Err(), ErrSuperseded) {
			t.Errorf("job %d Err() = %v, want ErrSuperseded", i, j.Err())
		}
	}
	if host.text != "Threat Hunting" {
		t.Errorf("final text = %q", host.text)
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

// TestDetachedHostDropsWrites 测试宿主移除后写入被丢弃
func TestDetachedHostDropsWrites(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, rand.New(rand.NewSource(9)))
	host := &spyHost{text: "ABC"}

	job := s.Start(host, "XYZ")
	host.detached = true
	writes := len(host.writes)

	runUntilDone(t, loop, job, 80)

	if len(host.writes) != writes {
		t.Errorf("detached host got %d writes", len(host.writes)-writes)
	}
	if job.Err() != nil {
		t.Errorf("Err() = %v, want nil", job.Err())
	}
}

// TestFrameCeiling 测试帧数上限
func TestFrameCeiling(t *testing.T) {
	loop := frame.NewLoop()
	cfg := DefaultConfig()
	cfg.MaxFrames = 10
	s := New(cfg, loop, fixedRand{})
	host := &spyHost{text: "slow"}

	job := s.Start(host, "done")
	frames := runUntilDone(t, loop, job, 80)

	if frames != 10 {
		t.Errorf("stopped after %d frames, want 10", frames)
	}
	if !errors.Is(job.Err(), ErrFrameCeiling) {
		t.Errorf("Err() = %v, want ErrFrameCeiling", job.Err())
	}
	if host.text != "done" {
		t.Errorf("final text = %q, want %q", host.text, "done")
	}
}

// TestEmptyTextResolvesImmediately 测试空文本立即完成
func TestEmptyTextResolvesImmediately(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, rand.New(rand.NewSource(1)))
	job := s.Start(&spyHost{}, "")

	if !isDone(job) {
		t.Fatal("empty job not done synchronously")
	}
	if job.Err() != nil {
		t.Errorf("Err() = %v, want nil", job.Err())
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

// TestStop 测试主动停止
func TestStop(t *testing.T) {
	loop := frame.NewLoop()
	s := New(DefaultConfig(), loop, fixedRand{})
	job := s.Start(&spyHost{text: "abc"}, "xyz")

	s.Stop()
	s.Stop()

	if !errors.Is(job.Err(), ErrSuperseded) {
		t.Errorf("Err() = %v, want ErrSuperseded", job.Err())
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

// TestSegmentsMarkup 测试输出的强调标记
func TestSegmentsMarkup(t *testing.T) {
	segs := Segments{}.appendPlain("A").appendPlain("B")
	segs = append(segs, Segment{Text: "<", Accent: true})
	segs = segs.appendPlain("C")

	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3 (plain runs merged)", len(segs))
	}
	if got := segs.Plain(); got != "AB<C" {
		t.Errorf("Plain() = %q, want %q", got, "AB<C")
	}
	want := `AB<span class="accent">&lt;</span>C`
	if got := segs.Markup("accent"); got != want {
		t.Errorf("Markup() = %q, want %q", got, want)
	}
	if segs.AccentCount() != 1 {
		t.Errorf("AccentCount() = %d, want 1", segs.AccentCount())
	}
}

// TestConfigValidate 测试配置校验
func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"空字母表", func(c *Config) { c.Alphabet = "" }},
		{"起始帧为零", func(c *Config) { c.MaxStart = 0 }},
		{"概率超过1", func(c *Config) { c.Rerandomize = 1.5 }},
		{"上限小于窗口", func(c *Config) { c.MaxFrames = 50 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
