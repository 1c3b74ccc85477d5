package typing

import (
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Phrases:     []string{"ab", "cd"},
		StartDelay:  100 * time.Millisecond,
		TypeDelay:   10 * time.Millisecond,
		DeleteDelay: 5 * time.Millisecond,
		HoldDelay:   50 * time.Millisecond,
		NextDelay:   20 * time.Millisecond,
	}
}

// TestTypewriterCycle 测试打字、停顿、删除、切换短语的完整周期
func TestTypewriterCycle(t *testing.T) {
	tw := New(testConfig())

	steps := []struct {
		name     string
		dt       time.Duration
		text     string
		phrase   int
		deleting bool
	}{
		{"启动延迟内", 99 * time.Millisecond, "", 0, false},
		{"第一个字符", 1 * time.Millisecond, "a", 0, false},
		{"打完短语", 10 * time.Millisecond, "ab", 0, true},
		{"停顿中", 49 * time.Millisecond, "ab", 0, true},
		{"开始删除", 1 * time.Millisecond, "a", 0, true},
		{"删除完毕切换短语", 5 * time.Millisecond, "", 1, false},
		{"下一短语", 20 * time.Millisecond, "c", 1, false},
	}

	for _, st := range steps {
		tw.Update(st.dt)
		if got := tw.Text(); got != st.text {
			t.Fatalf("%s: Text() = %q, want %q", st.name, got, st.text)
		}
		if tw.Phrase() != st.phrase {
			t.Fatalf("%s: Phrase() = %d, want %d", st.name, tw.Phrase(), st.phrase)
		}
		if tw.Deleting() != st.deleting {
			t.Fatalf("%s: Deleting() = %v, want %v", st.name, tw.Deleting(), st.deleting)
		}
	}
}

// TestTypewriterWrapsAround 测试最后一个短语之后回到第一个
func TestTypewriterWrapsAround(t *testing.T) {
	tw := New(testConfig())

	// 启动 100ms，每个短语 10+50+5+20 = 85ms，250ms 时回到第一个短语
	tw.Update(260 * time.Millisecond)
	if tw.Phrase() != 0 {
		t.Errorf("Phrase() = %d after a full cycle, want 0", tw.Phrase())
	}
	if tw.Text() != "" {
		t.Errorf("Text() = %q after a full cycle, want empty", tw.Text())
	}
}

// TestTypewriterLargeStep 测试单帧跨越多个按键
func TestTypewriterLargeStep(t *testing.T) {
	cfg := testConfig()
	cfg.Phrases = []string{"hello"}
	tw := New(cfg)

	tw.Update(125 * time.Millisecond) // 按键发生在 100、110、120ms
	if got := tw.Text(); got != "hel" {
		t.Errorf("Text() = %q, want %q", got, "hel")
	}
}

// TestTypewriterUnicode 测试多字节字符按字符计数
func TestTypewriterUnicode(t *testing.T) {
	cfg := testConfig()
	cfg.Phrases = []string{"威胁狩猎"}
	tw := New(cfg)

	tw.Update(110 * time.Millisecond)
	if got := tw.Text(); got != "威胁" {
		t.Errorf("Text() = %q, want %q", got, "威胁")
	}
}

// TestConfigValidate 测试配置校验
func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	bad := DefaultConfig()
	bad.Phrases = nil
	if err := bad.Validate(); err == nil {
		t.Error("Validate() with no phrases = nil, want error")
	}

	bad = DefaultConfig()
	bad.TypeDelay = 0
	if err := bad.Validate(); err == nil {
		t.Error("Validate() with zero type delay = nil, want error")
	}
}
