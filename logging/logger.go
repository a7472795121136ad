// Copyright (c) 2026 The netcore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the logging functionality used by the
// netcore server, powered by go.uber.org/zap. It sets up a
// default logger and lets callers swap in their own by implementing the
// Logger interface and passing it via netcore.WithLogger.
//
// The environment variable NETCORE_LOGGING_LEVEL selects the default
// logger's level (zapcore.Level, e.g. -1 for debug, 0 for info).
// NETCORE_LOGGING_FILE, if set, redirects the default logger to a local
// file with rotation via gopkg.in/natefinch/lumberjack.v2.
package logging

import (
	"errors"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	flushLogs           func() error
	defaultLogger       Logger
	defaultLoggingLevel Level
)

// Level is the alias of zapcore.Level.
type Level = zapcore.Level

func init() {
	if lvl := os.Getenv("NETCORE_LOGGING_LEVEL"); lvl != "" {
		n, err := strconv.ParseInt(lvl, 10, 8)
		if err != nil {
			panic("invalid NETCORE_LOGGING_LEVEL, " + err.Error())
		}
		defaultLoggingLevel = Level(n)
	}

	if fileName := os.Getenv("NETCORE_LOGGING_FILE"); fileName != "" {
		var err error
		defaultLogger, flushLogs, err = CreateLoggerAsLocalFile(fileName, defaultLoggingLevel)
		if err != nil {
			panic("invalid NETCORE_LOGGING_FILE, " + err.Error())
		}
		return
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(defaultLoggingLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zapLogger, _ := cfg.Build()
	defaultLogger = zapLogger.Sugar()
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// GetDefaultLogger returns the package-wide default logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// CreateLoggerAsLocalFile sets up a logger that writes to a rotated
// local file.
func CreateLoggerAsLocalFile(localFilePath string, logLevel Level) (logger Logger, flush func() error, err error) {
	if localFilePath == "" {
		return nil, nil, errors.New("invalid local logger path")
	}

	// lumberjack.Logger is already safe for concurrent use.
	lumberjackLogger := &lumberjack.Logger{
		Filename:   localFilePath,
		MaxSize:    100, // megabytes
		MaxBackups: 2,
		MaxAge:     15, // days
	}

	encoder := getEncoder()
	ws := zapcore.AddSync(lumberjackLogger)
	zapcore.Lock(ws)

	levelEnabler := zap.LevelEnablerFunc(func(level Level) bool {
		return level >= logLevel
	})
	core := zapcore.NewCore(encoder, ws, levelEnabler)
	zapLogger := zap.New(core, zap.AddCaller())
	logger = zapLogger.Sugar()
	flush = zapLogger.Sync
	return
}

// Cleanup flushes the default logger, if it buffers writes.
func Cleanup() {
	if flushLogs != nil {
		_ = flushLogs()
	}
}

// Logger is the diagnostic sink used throughout netcore. The server logs
// its listen, notifier, accept, registration, re-arm and teardown
// failures through this interface; Dial returns its errors without
// logging them.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}
