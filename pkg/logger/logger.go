// Package logger fornece logging estruturado com tag de componente.
// Implementado sobre zap; a API por componente (InfoC, WarnCF, ...) permite
// filtrar logs de agent, database, orchestrator etc. separadamente.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = newZap(false)
)

// Init reconfigura o logger global. debug habilita nível DEBUG.
func Init(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	base = newZap(debug)
}

func newZap(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func fieldsOf(component string, extra map[string]interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(extra)+1)
	fields = append(fields, zap.String("component", component))
	for k, v := range extra {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}

// DebugC loga em nível DEBUG com tag de componente.
func DebugC(component, msg string) {
	get().Debug(msg, zap.String("component", component))
}

// DebugCF loga em nível DEBUG com campos adicionais.
func DebugCF(component, msg string, fields map[string]interface{}) {
	get().Debug(msg, fieldsOf(component, fields)...)
}

// InfoC loga em nível INFO com tag de componente.
func InfoC(component, msg string) {
	get().Info(msg, zap.String("component", component))
}

// InfoCF loga em nível INFO com campos adicionais.
func InfoCF(component, msg string, fields map[string]interface{}) {
	get().Info(msg, fieldsOf(component, fields)...)
}

// WarnC loga em nível WARN com tag de componente.
func WarnC(component, msg string) {
	get().Warn(msg, zap.String("component", component))
}

// WarnCF loga em nível WARN com campos adicionais.
func WarnCF(component, msg string, fields map[string]interface{}) {
	get().Warn(msg, fieldsOf(component, fields)...)
}

// ErrorC loga em nível ERROR com tag de componente.
func ErrorC(component, msg string) {
	get().Error(msg, zap.String("component", component))
}

// ErrorCF loga em nível ERROR com campos adicionais.
func ErrorCF(component, msg string, fields map[string]interface{}) {
	get().Error(msg, fieldsOf(component, fields)...)
}

// Sync descarrega buffers pendentes. Chamar antes de encerrar o processo.
func Sync() {
	_ = get().Sync()
}
