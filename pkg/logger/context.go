package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInitGlobalLogger возвращается при неудачной инициализации глобального логгера.
var ErrInitGlobalLogger = fmt.Errorf("failed to initialize global logger")

// loggerKeyType - тип ключа контекста для предотвращения коллизий.
type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger

	// fallback используется до инициализации глобального логгера,
	// чтобы ранние записи не терялись молча.
	fallbackOnce sync.Once
	fallback     *Logger
)

func fallbackLogger() *Logger {
	fallbackOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		zapLogger, _ := cfg.Build()
		fallback = &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
	})
	return fallback
}

// NewContext возвращает контекст с привязанным логгером.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// InitGlobalLoggerWithLevel инициализирует глобальный логгер один раз;
// повторные вызовы не переопределяют уже установленный экземпляр.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger != nil {
		return nil
	}

	log, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	globalLogger = log

	return nil
}

// SetGlobalLogger заменяет глобальный логгер. Используется после загрузки
// конфигурации, когда известны итоговые режим и уровень логирования.
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Log возвращает логгер из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
		return logger
	}

	globalMu.RLock()
	log := globalLogger
	globalMu.RUnlock()

	if log != nil {
		return log
	}
	return fallbackLogger()
}
