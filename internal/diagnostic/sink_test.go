package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCollector(t *testing.T) {
	var c Collector

	c.Report(Diagnostic{Severity: DiagnosticError, Code: CodeNotFound, Message: "missing"})
	c.Report(Diagnostic{Severity: DiagnosticWarning, Code: CodeAmbiguous, Message: "two"})
	c.Report(Diagnostic{Severity: DiagnosticInfo, Code: CodeAssigned, Message: "ok"})

	assert.Len(t, c.Errors, 1)
	assert.Len(t, c.Warnings, 1)
	assert.Len(t, c.Infos, 1)
	assert.True(t, c.HasErrors())
	assert.Len(t, c.WithCode(CodeAmbiguous), 1)

	c.Reset()
	assert.False(t, c.HasErrors())
	assert.True(t, c.IsValid())
	assert.NoError(t, c.Error())
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core), "")

	sink.Report(Diagnostic{
		Severity: DiagnosticWarning,
		Code:     CodeAmbiguous,
		Message:  "Multiple instances of GameSettings found. Using first one.",
		Owner:    "platformer.Player (Hero)",
		Field:    "Settings",
	})

	entries := logs.All()
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, zapcore.WarnLevel, e.Level)
	assert.Equal(t, "[AutoAssigner] Multiple instances of GameSettings found. Using first one.", e.Message)

	ctx := e.ContextMap()
	assert.Equal(t, CodeAmbiguous, ctx["code"])
	assert.Equal(t, "platformer.Player (Hero)", ctx["owner"])
	assert.Equal(t, "Settings", ctx["field"])
}

func TestTee(t *testing.T) {
	var a, b Collector

	Tee{&a, nil, &b, Discard}.Report(Diagnostic{Severity: DiagnosticError, Message: "x"})

	assert.Len(t, a.Errors, 1)
	assert.Len(t, b.Errors, 1)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Code: CodeNotFound, Message: "nothing", Owner: "Player (Hero)", Field: "Body"}
	assert.Equal(t, "[Player (Hero)] Body: [not_found] nothing", d.String())

	var all Diagnostics
	all.AddError(CodeFieldError, "boom", "", "")
	all.AddError(CodeFieldError, "bang", "", "")
	assert.EqualError(t, all.Error(), "[field_error] boom; [field_error] bang")
}
