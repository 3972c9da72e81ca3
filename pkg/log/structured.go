package log

import (
	"context"
	"fmt"
	"time"

	"github.com/findajob/job-triage/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger traces named operations. Every line of an operation carries the
// operation name, its parameters and the request id found in the context.
type StructuredLogger struct {
	name  string
	level zapcore.Level
}

// NewDebugLogger returns a logger writing steps and successes at debug level.
// Errors are always written at error level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.DebugLevel}
}

// NewInfoLogger returns a logger writing steps and successes at info level.
func NewInfoLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.InfoLevel}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *OperationBuilder {
	fields := []zap.Field{}
	if id := requestid.FromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return &OperationBuilder{logger: l, fields: fields}
}

type OperationBuilder struct {
	logger    *StructuredLogger
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) Operation(name string) *OperationBuilder {
	b.operation = name
	return b
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithInt64(key string, value int64) *OperationBuilder {
	b.fields = append(b.fields, zap.Int64(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	fields := append([]zap.Field{zap.String("operation", b.operation)}, b.fields...)
	return &OperationTracer{
		logger: zap.L().Named(b.logger.name).WithOptions(zap.AddCallerSkip(1)).With(fields...),
		level:  b.logger.level,
		start:  time.Now(),
	}
}

// OperationTracer emits the log entries of one operation.
type OperationTracer struct {
	logger *zap.Logger
	level  zapcore.Level
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Entry {
	return t.entry(t.level, fmt.Sprintf("step: %s", name), zap.String("step", name))
}

func (t *OperationTracer) Success() *Entry {
	return t.entry(t.level, "operation succeeded", zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *Entry {
	return t.entry(zapcore.ErrorLevel, "operation failed", zap.Error(err), zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) entry(level zapcore.Level, msg string, fields ...zap.Field) *Entry {
	return &Entry{logger: t.logger, level: level, msg: msg, fields: fields}
}

type Entry struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithInt64(key string, value int64) *Entry {
	e.fields = append(e.fields, zap.Int64(key, value))
	return e
}

func (e *Entry) WithParam(key string, value any) *Entry {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Entry) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
