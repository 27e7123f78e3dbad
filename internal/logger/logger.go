package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger

// Init настраивает глобальный логгер: production-конфиг для прода,
// цветной development-конфиг для всего остального.
func Init(production bool) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	global, err = cfg.Build()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
}

// L возвращает глобальный логгер (no-op до Init в тестах).
func L() *zap.Logger {
	if global == nil {
		return zap.NewNop()
	}
	return global
}
