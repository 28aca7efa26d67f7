// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"

	"github.com/jessevdk/go-flags"
)

const (
	defaultLogFile    = "bufferbench.log"
	defaultCapacity   = 1000
	defaultNumPackets = 10000
	defaultDebugLevel = "info"
)

type config struct {
	Capacity   int    `long:"capacity" description:"Buffer capacity"`
	NumPackets int    `long:"num-packets" description:"Number of synthetic packets to push through the pipeline"`
	LogFile    string `long:"log-file" description:"Path to the log file"`
	DebugLevel string `long:"debug-level" description:"Logging level: trace, debug, info, warn, error, critical, or SUBSYSTEM=level,..."`
}

func parseConfig() (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if cfg.Capacity < 0 {
		return nil, errors.New("--capacity must not be negative")
	}
	if cfg.NumPackets < 0 {
		return nil, errors.New("--num-packets must not be negative")
	}

	if cfg.Capacity == 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.NumPackets == 0 {
		cfg.NumPackets = defaultNumPackets
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	if cfg.DebugLevel == "" {
		cfg.DebugLevel = defaultDebugLevel
	}

	return cfg, nil
}
