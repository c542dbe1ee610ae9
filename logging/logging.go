// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the global structured logger cmd/vgram and
// the core packages' callers are expected to configure once at process
// start and retrieve everywhere else, following the teacher's log.Init/
// log.Get split (log/log.go) with the encoder/resource-field packages it
// splits out collapsed into this one file: a short-lived CLI invocation
// has no OpenTelemetry resource attributes or multi-tenant log routing
// to speak of.
package logging

import (
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	once     sync.Once
	logger   *zap.Logger
	instance = uuid.New().String()
)

// Format selects the encoding Init configures the global logger with.
type Format int

const (
	// FormatConsole is human-readable, colorized output for a terminal.
	FormatConsole Format = iota
	// FormatJSON is structured output for log aggregation.
	FormatJSON
)

// Options configures Init.
type Options struct {
	// Format selects console or JSON encoding.
	Format Format
	// Level is the minimum enabled level ("debug","info","warn","error").
	Level string
	// LogFile, if non-empty, additionally writes JSON-encoded entries to
	// a rotated file via lumberjack (grounded on the teacher's
	// shardLogger in build/builder.go).
	LogFile string
	// MaxSizeMB is lumberjack's MaxSize, in megabytes; defaults to 100.
	MaxSizeMB int
}

// Init configures the global logger exactly once; subsequent calls are
// no-ops, matching the teacher's sync.Once-guarded log.Init.
func Init(opts Options) {
	once.Do(func() {
		logger = build(opts)
	})
}

// Get returns the global logger, panicking if Init was never called —
// the teacher's log.Get does the same, on the theory that a missing
// logger is a startup bug, not a runtime condition to handle gracefully.
func Get() *zap.Logger {
	if logger == nil {
		panic("logging: Get called before Init")
	}
	return logger
}

// InstanceID returns a per-process identifier attached to every log
// line, so a collect-frequent run's logs can be correlated with its
// printed output and its -metrics-addr process.
func InstanceID() string { return instance }

func build(opts Options) *zap.Logger {
	level := zap.NewAtomicLevel()
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}
	} else {
		level.SetLevel(zap.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if opts.Format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(consoleCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level),
	}

	if opts.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename: opts.LogFile,
			MaxSize:  maxSizeOrDefault(opts.MaxSizeMB),
			Compress: true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	core := zapcore.NewTee(cores...)
	return zap.New(core, zap.AddCaller()).With(zap.String("instance", instance))
}

func maxSizeOrDefault(mb int) int {
	if mb <= 0 {
		return 100
	}
	return mb
}

// RunID generates a short, sortable run identifier, distinct from the
// per-process InstanceID and unique per call. The global logger does not
// attach it to log lines; only the instance field is added automatically.
func RunID() string {
	return xid.New().String()
}
