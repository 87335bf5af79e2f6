package config

import (
	"testing"
	"time"

	kit "vidtally/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	api := root.Prefix("CORE_API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_API_PORT")
	}
	apiLog := api.Prefix("LOG_")
	if got := apiLog.key("LEVEL"); got != "CORE_API_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "CORE_API_LOG_LEVEL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CORE_BOT_")
	t.Setenv("CORE_BOT_TOKEN", "  123456:bot-token ")
	got := c.MustString("TOKEN")
	if got != "123456:bot-token" {
		t.Fatalf("MustString = %q, want %q", got, "123456:bot-token")
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	// blanks count as unset
	t.Setenv("CORE_BOT_WS", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("WS") })
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_PORT", "8080")
	if got := c.MustPort("PORT"); got != ":8080" {
		t.Fatalf("MustPort = %q, want %q", got, ":8080")
	}
	t.Setenv("CORE_API_BAD", "abc")
	kit.MustPanic(t, func() { _ = c.MustPort("BAD") })
	t.Setenv("CORE_API_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("OOB") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("TRANSLATOR_")
	if got := c.MayString("MODE", "heuristics"); got != "heuristics" {
		t.Fatalf("MayString default = %q, want %q", got, "heuristics")
	}
	t.Setenv("TRANSLATOR_MODE", " llm ")
	if got := c.MayString("MODE", "heuristics"); got != "llm" {
		t.Fatalf("MayString value = %q, want %q", got, "llm")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("TRANSLATOR_")
	if got := c.MayInt("MAX_ATTEMPTS", 3); got != 3 {
		t.Fatalf("MayInt default = %d, want %d", got, 3)
	}
	t.Setenv("TRANSLATOR_MAX_ATTEMPTS", " 5 ")
	if got := c.MayInt("MAX_ATTEMPTS", 3); got != 5 {
		t.Fatalf("MayInt ok = %d, want %d", got, 5)
	}
	t.Setenv("TRANSLATOR_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt junk kept default? got %d, want %d", got, 3)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("CORE_API_")
	if got := c.MayBool("SWAGGER_ENABLED", true); got != true {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("CORE_API_SWAGGER_ENABLED", "true")
	if got := c.MayBool("SWAGGER_ENABLED", false); got != true {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("CORE_API_BAD", "nope")
	if got := c.MayBool("BAD", false); got != false {
		t.Fatalf("MayBool junk kept default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("TRANSLATOR_")
	if got := c.MayDuration("TIMEOUT", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("TRANSLATOR_TIMEOUT", "150ms")
	if got := c.MayDuration("TIMEOUT", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want %v", got, 150*time.Millisecond)
	}
	t.Setenv("TRANSLATOR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration junk kept default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}
	if got := c.MayCSV("CORS_ORIGINS", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " https://vidtally.app, https://bot.vidtally.app , ,https://ops.vidtally.app ,, ")
	got := c.MayCSV("CORS_ORIGINS", nil)
	want := []string{"https://vidtally.app", "https://bot.vidtally.app", "https://ops.vidtally.app"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMayCSVAllEmptyFallsBackToDefault(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}
	t.Setenv("CORE_API_CORS_ORIGINS", " , ,  ,")
	got := c.MayCSV("CORS_ORIGINS", def)
	if len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV comma-only value kept default? got %#v", got)
	}
}
