// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/session-env/env"
)

// stubQuoter brackets values so tests can see which strings were quoted.
type stubQuoter struct {
	failOn string
	calls  []string
}

func (q *stubQuoter) Quote(_ context.Context, s string) (string, error) {
	q.calls = append(q.calls, s)
	if q.failOn != "" && s == q.failOn {
		return "", errors.New("fish exited with status 127")
	}
	return "<" + s + ">", nil
}

func sessionVars() []env.Var {
	return []env.Var{
		{Name: "DISPLAY", Value: ":0"},
		{Name: "DBUS_SESSION_BUS_ADDRESS", Value: "unix:path=/tmp/bus"},
		{Name: "SSH_AUTH_SOCK", Value: "/tmp/ssh-agent.sock"},
	}
}

func TestRenderPosix(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{}

	require.NoError(t, f.Render(context.Background(), &out, DialectPosix, sessionVars()))

	want := "export DISPLAY=:0\n" +
		"export DBUS_SESSION_BUS_ADDRESS=unix:path=/tmp/bus\n" +
		"export SSH_AUTH_SOCK=/tmp/ssh-agent.sock\n"
	assert.Equal(t, want, out.String())
}

func TestRenderFishUsesQuoter(t *testing.T) {
	var out bytes.Buffer
	q := &stubQuoter{}
	f := &Formatter{Fish: q}

	vars := []env.Var{{Name: "DISPLAY", Value: ":1"}}
	require.NoError(t, f.Render(context.Background(), &out, DialectFish, vars))

	assert.Equal(t, "set -x <DISPLAY> <:1>\n", out.String())
	assert.Equal(t, []string{"DISPLAY", ":1"}, q.calls)
}

func TestRenderFishFailureWritesNothing(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{Fish: &stubQuoter{failOn: "/tmp/ssh-agent.sock"}}

	err := f.Render(context.Background(), &out, DialectFish, sessionVars())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSH_AUTH_SOCK")
	assert.Empty(t, out.String(), "no partial output may be written")
}

func TestRenderFishWithoutQuoter(t *testing.T) {
	var out bytes.Buffer
	err := (&Formatter{}).Render(context.Background(), &out, DialectFish, sessionVars())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRenderJSONKeepsOrder(t *testing.T) {
	var out bytes.Buffer
	f := &Formatter{}

	vars := []env.Var{
		{Name: "SSH_AUTH_SOCK", Value: "/run/agent"},
		{Name: "DISPLAY", Value: `:0 "quoted"`},
	}
	require.NoError(t, f.Render(context.Background(), &out, DialectJSON, vars))

	want := "{\n" +
		"    \"SSH_AUTH_SOCK\": \"/run/agent\",\n" +
		"    \"DISPLAY\": \":0 \\\"quoted\\\"\"\n" +
		"}\n"
	assert.Equal(t, want, out.String())
}

func TestRenderJSONEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&Formatter{}).Render(context.Background(), &out, DialectJSON, nil))
	assert.Equal(t, "{}\n", out.String())
}

func TestRenderUnknownDialect(t *testing.T) {
	var out bytes.Buffer
	err := (&Formatter{}).Render(context.Background(), &out, Dialect("csh"), sessionVars())
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestLineRejectsJSON(t *testing.T) {
	_, err := (&Formatter{}).Line(context.Background(), DialectJSON, "DISPLAY", ":0")
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderWriteError(t *testing.T) {
	err := (&Formatter{}).Render(context.Background(), failingWriter{}, DialectPosix, sessionVars())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "broken pipe"))
}
