// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"trace":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"verbose": log.ErrorLevel,
		"":        log.ErrorLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	logger.Debug("TRACE: deep detail")
	logger.Warn("careful")
	logger.WithError(errors.New("boom")).Error("failed")

	out := buf.String()
	assert.Contains(t, out, " T deep detail\n")
	assert.Contains(t, out, " W careful\n")
	assert.Contains(t, out, " E failed error=boom\n")
}
