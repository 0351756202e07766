package monitor

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestTrafficHookPrintsCommandLine(t *testing.T) {
	var buf bytes.Buffer
	var enabled atomic.Bool
	enabled.Store(true)
	h := &trafficHook{w: &buf, enabled: &enabled}

	cmd := redis.NewStatusCmd(context.Background(), "set", "foo", "bar")
	h.print(cmd)

	out := buf.String()
	if !strings.Contains(out, "set foo bar") {
		t.Errorf("print output = %q, want it to contain %q", out, "set foo bar")
	}
	if !strings.Contains(out, "\t") {
		t.Errorf("print output = %q, want a tab between timestamp and command", out)
	}
}

func TestTrafficHookPrintsNothingOnceDisabled(t *testing.T) {
	var buf bytes.Buffer
	var enabled atomic.Bool
	enabled.Store(false)
	h := &trafficHook{w: &buf, enabled: &enabled}

	h.print(redis.NewStatusCmd(context.Background(), "ping"))

	if buf.Len() != 0 {
		t.Errorf("expected no output once disabled, got %q", buf.String())
	}
}

func TestAttachReturnsWorkingDetach(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	var buf bytes.Buffer
	detach := Attach(client, &buf)
	detach()
}

func TestFormatArgsJoinsWithSpaces(t *testing.T) {
	got := formatArgs([]interface{}{"set", "foo", 42})
	if got != "set foo 42" {
		t.Errorf("formatArgs = %q, want %q", got, "set foo 42")
	}
}
