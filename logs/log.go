// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logs provides the per-subsystem loggers used across this module:
// the wire decoder, the sanitizer, the fee/priority calculator and the
// pending-transaction buffer each get their own tagged, independently
// leveled logger backed by github.com/btcsuite/btclog.
package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	if initiated {
		os.Stdout.Write(p)
		LogRotator.Write(p)
	}
	return len(p), nil
}

var _ io.Writer = logWriter{}

// Loggers per subsystem. A single backend is created and all subsystem
// loggers created from it write to the backend. Until the log rotator has
// been initialized via InitLogRotator, everything they write is discarded.
var (
	backendLog = btclog.NewBackend(logWriter{})

	// LogRotator is the rotating file output. It should be closed on
	// application shutdown.
	LogRotator *rotator.Rotator

	bufrLog = backendLog.Logger("BUFR")
	wireLog = backendLog.Logger("WIRE")
	saniLog = backendLog.Logger("SANI")
	feecLog = backendLog.Logger("FEEC")

	initiated = false
)

// SubsystemTags is an enum of all subsystem tags.
var SubsystemTags = struct {
	BUFR,
	WIRE,
	SANI,
	FEEC string
}{
	BUFR: "BUFR",
	WIRE: "WIRE",
	SANI: "SANI",
	FEEC: "FEEC",
}

var subsystemLoggers = map[string]btclog.Logger{
	SubsystemTags.BUFR: bufrLog,
	SubsystemTags.WIRE: wireLog,
	SubsystemTags.SANI: saniLog,
	SubsystemTags.FEEC: feecLog,
}

// Buffer returns the logger for the pending-transaction buffer.
func Buffer() btclog.Logger { return bufrLog }

// Wire returns the logger for the wire decoder.
func Wire() btclog.Logger { return wireLog }

// Sanitize returns the logger for the sanitizer.
func Sanitize() btclog.Logger { return saniLog }

// Fee returns the logger for the priority/fee calculator.
func Fee() btclog.Logger { return feecLog }

// InitLogRotator initializes the logging rotator to write logs to logFile
// and create roll files alongside it. It must be called before any of the
// package-global loggers are used if file output is desired; until then,
// all loggers are no-ops (matching btclog's default disabled backend).
func InitLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %s\n", err)
			os.Exit(1)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %s\n", err)
		os.Exit(1)
	}
	LogRotator = r
	initiated = true
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		level = btclog.LevelInfo
	}
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for every subsystem logger to the passed
// level.
func SetLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetDebugLevels attempts to parse the specified debug level
// specification and sets the levels accordingly. The specification may
// either be a single level applied to all subsystems, or a comma-separated
// list of SUBSYSTEM=level pairs.
func ParseAndSetDebugLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		if _, ok := subsystemLoggers[subsysID]; !ok {
			return fmt.Errorf("the specified subsystem [%s] is invalid -- "+
				"supported subsystems %s", subsysID, strings.Join(SupportedSubsystems(), ", "))
		}

		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", logLevel)
		}

		SetLogLevel(subsysID, logLevel)
	}

	return nil
}

func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}
