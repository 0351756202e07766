package monitor

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Attach registers a redis.Hook on client that prints every command it
// sends to w, one line per command, in the form
// "HH:MM:SS.ffffff\tCMD ARGS...", mirroring the original monitor.py's
// `red.monitor()` listen loop. Pipelined commands are printed one line per
// member of the pipeline, in the order they were queued.
//
// go-redis v9's client has no hook-removal API, so the returned detach
// function flips an atomic flag rather than unregistering the hook —
// once called, the hook remains registered but silently no-ops.
func Attach(client *redis.Client, w io.Writer) func() {
	var enabled atomic.Bool
	enabled.Store(true)

	client.AddHook(&trafficHook{w: w, enabled: &enabled})

	return func() { enabled.Store(false) }
}

type trafficHook struct {
	w       io.Writer
	enabled *atomic.Bool
}

func (h *trafficHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *trafficHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.print(cmd)
		return next(ctx, cmd)
	}
}

func (h *trafficHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.print(cmd)
		}
		return next(ctx, cmds)
	}
}

func (h *trafficHook) print(cmd redis.Cmder) {
	if !h.enabled.Load() {
		return
	}
	fmt.Fprintf(h.w, "%s\t%s\n", time.Now().Format("15:04:05.000000"), formatArgs(cmd.Args()))
}

func formatArgs(args []interface{}) string {
	out := make([]byte, 0, 64)
	for i, a := range args {
		if i > 0 {
			out = append(out, ' ')
		}
		out = fmt.Appendf(out, "%v", a)
	}
	return string(out)
}
