package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap/zapcore"
)

// Slog wraps the logger in a *slog.Logger so packages written against the
// standard structured logging API share the same zap core, trace fields,
// and mirror hook.
func (l *Logger) Slog() *slog.Logger {
	if l == nil {
		l = NewNop()
	}
	return slog.New(&slogBridge{logger: l})
}

type slogBridge struct {
	logger *Logger
	attrs  []slog.Attr
	group  string
}

func (b *slogBridge) Enabled(_ context.Context, level slog.Level) bool {
	return b.logger.Zap().Core().Enabled(zapLevelFromSlog(level))
}

func (b *slogBridge) Handle(ctx context.Context, record slog.Record) error {
	args := make([]any, 0, (len(b.attrs)+record.NumAttrs())*2)
	for _, attr := range b.attrs {
		args = append(args, b.attrKey(attr.Key), attr.Value.Any())
	}
	record.Attrs(func(attr slog.Attr) bool {
		args = append(args, b.attrKey(attr.Key), attr.Value.Any())
		return true
	})

	b.logger.logContext(ctx, zapLevelFromSlog(record.Level), record.Message, args...)
	return nil
}

func (b *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)
	merged = append(merged, attrs...)
	return &slogBridge{logger: b.logger, attrs: merged, group: b.group}
}

func (b *slogBridge) WithGroup(name string) slog.Handler {
	if name == "" {
		return b
	}
	prefix := name
	if b.group != "" {
		prefix = b.group + "." + name
	}
	return &slogBridge{logger: b.logger, attrs: b.attrs, group: prefix}
}

func (b *slogBridge) attrKey(key string) string {
	if b.group == "" {
		return key
	}
	return b.group + "." + key
}

func zapLevelFromSlog(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
