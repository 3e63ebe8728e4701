package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every emitted log line in addition to the primary
// sink. The uptrace exporter hangs off this hook.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirrorFn atomic.Pointer[MirrorFunc]

func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirrorFn.Store(nil)
		return
	}
	mirrorFn.Store(&fn)
}

func mirrorLog(ctx context.Context, level Level, msg string, args ...any) {
	ptr := mirrorFn.Load()
	if ptr == nil {
		return
	}
	(*ptr)(ctx, level, msg, args...)
}
