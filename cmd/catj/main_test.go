// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCatj(t *testing.T, input string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(input), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun(t *testing.T) {
	t.Run("Flatten", func(t *testing.T) {
		code, stdout, stderr := runCatj(t, `{"foo": "bar", "baz": [1, {}], "q x": {}}`)
		require.Equal(t, exitOK, code)
		assert.Equal(t, ".foo = \"bar\"\n.baz[0] = 1\n.\"q x\" = {}\n", stdout)
		assert.Empty(t, stderr)
	})

	t.Run("Concatenated", func(t *testing.T) {
		code, stdout, _ := runCatj(t, "{\"a\": 1}\n{\"b\": 2}\n")
		require.Equal(t, exitOK, code)
		assert.Equal(t, ".a = 1\n\n.b = 2\n", stdout)
	})

	t.Run("Empty", func(t *testing.T) {
		code, stdout, stderr := runCatj(t, "")
		require.Equal(t, exitOK, code)
		assert.Empty(t, stdout)
		assert.Empty(t, stderr)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		code, stdout, stderr := runCatj(t, "{\"a\": 1,\n \"b\" 2}")
		require.Equal(t, exitFailed, code)
		assert.Equal(t, ".a = 1\n", stdout, "output before the error is kept")
		assert.Equal(t, "Error in input at line 2 column 6: invalid JSON syntax\n", stderr)
	})

	t.Run("Truncated", func(t *testing.T) {
		code, _, stderr := runCatj(t, `{"a": [1, 2`)
		require.Equal(t, exitFailed, code)
		assert.Equal(t, "Error in input at line 1 column 11: JSON truncated\n", stderr)
	})

	t.Run("InvalidEscape", func(t *testing.T) {
		code, _, stderr := runCatj(t, `["\q"]`)
		require.Equal(t, exitFailed, code)
		assert.Equal(t, "Error in input at line 1 column 4: invalid string escape sequence: \\q\n", stderr)
	})

	t.Run("ReadError", func(t *testing.T) {
		var out, errOut bytes.Buffer
		code := run(nil, iotest.ErrReader(errors.New("disk on fire")), &out, &errOut)
		require.Equal(t, exitFailed, code)
		assert.Equal(t, "Error in input at line 1 column 0: I/O error: disk on fire\n", errOut.String())
	})
}

func TestFlags(t *testing.T) {
	t.Run("Version", func(t *testing.T) {
		for _, flag := range []string{"-V", "--version"} {
			code, stdout, stderr := runCatj(t, `{"a": 1}`, flag)
			assert.Equal(t, exitUsage, code, flag)
			assert.Empty(t, stdout, flag)
			assert.True(t, strings.HasPrefix(stderr, "catj v"+version+"\n"), "stderr: %q", stderr)
			assert.Contains(t, stderr, "https://github.com/creachadair/catj")
		}
	})

	t.Run("Help", func(t *testing.T) {
		code, stdout, stderr := runCatj(t, "", "--help")
		assert.Equal(t, exitOK, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "--comments")
	})

	t.Run("Unknown", func(t *testing.T) {
		for _, args := range [][]string{{"--bogus"}, {"-x"}, {"file.json"}} {
			code, stdout, stderr := runCatj(t, `{"a": 1}`, args...)
			assert.Equal(t, exitUsage, code, "args %q", args)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "usage: catj")
		}
	})

	t.Run("Comments", func(t *testing.T) {
		const input = `{
  // The name.
  "name": "catj", /* inline */
  "tags": ["a", "b",],
}`
		code, stdout, stderr := runCatj(t, input, "-c")
		require.Equal(t, exitOK, code, "stderr: %s", stderr)
		assert.Equal(t, ".name = \"catj\"\n.tags[0] = \"a\"\n.tags[1] = \"b\"\n", stdout)

		// Without the flag, the comment is a syntax error.
		code, stdout, stderr = runCatj(t, input)
		assert.Equal(t, exitFailed, code)
		assert.Empty(t, stdout)
		assert.Equal(t, "Error in input at line 2 column 3: invalid JSON syntax\n", stderr)
	})

	t.Run("CommentsInvalid", func(t *testing.T) {
		code, stdout, stderr := runCatj(t, `{"a": /* unterminated`, "--comments")
		assert.Equal(t, exitFailed, code)
		assert.Empty(t, stdout)
		assert.True(t, strings.HasPrefix(stderr, "Error in input: "), "stderr: %q", stderr)
	})

	t.Run("Verbose", func(t *testing.T) {
		code, stdout, stderr := runCatj(t, `{"a": 1} [2]`, "-v")
		require.Equal(t, exitOK, code)
		assert.Equal(t, ".a = 1\n\n[0] = 2\n", stdout)
		assert.Contains(t, stderr, "level=debug")
		assert.Contains(t, stderr, `msg="end of input"`)
		assert.Contains(t, stderr, "values=2")
	})

	t.Run("Quiet", func(t *testing.T) {
		code, _, stderr := runCatj(t, `{"a": 1} [2]`)
		require.Equal(t, exitOK, code)
		assert.Empty(t, stderr)
	})
}
