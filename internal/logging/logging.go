package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// 標準出力とローテーションするファイルの両方にJSONで書く。
// filePathが空なら標準出力だけ。
func New(component string, filePath string, level slog.Level) *slog.Logger {
	var w io.Writer = os.Stdout
	if filePath != "" {
		_ = os.MkdirAll(filepath.Dir(filePath), 0o755)
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	}
	return NewWithWriter(component, w, level)
}

func NewWithWriter(component string, w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", component)
}

// テスト用。何も出力しない
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ctxにロガーを入れる（リクエスト単位のrequest_id付きなど）
func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// ctxのロガー、無ければfallback
func FromCtx(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return fallback
}

func LevelFromEnv(goEnv string) slog.Level {
	if goEnv == "prod" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
