package client

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeWith(t *testing.T, input string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { r.Close() })
	return r
}

func TestTerminalReader_Lines(t *testing.T) {
	prompts := new(bytes.Buffer)
	r := NewTerminalReader(pipeWith(t, "first secret\r\nsecond"), prompts)

	v, err := r.ReadSecret("Password")
	require.NoError(t, err)
	assert.Equal(t, "first secret", v)

	v, err = r.ReadSecret("Repeat password")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	_, err = r.ReadSecret("Extra")
	assert.Error(t, err)

	assert.Contains(t, prompts.String(), "Password: ")
	assert.NotContains(t, prompts.String(), "first secret")
}

func TestTerminalReader_Terminal(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = origTerm, origRead })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }

	r := NewTerminalReader(pipeWith(t, ""), new(bytes.Buffer))
	v, err := r.ReadSecret("Password")
	require.NoError(t, err)
	assert.Equal(t, "typed", v)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a tty") }
	_, err = r.ReadSecret("Password")
	assert.ErrorContains(t, err, "read password")
}

func TestReadNewPassword(t *testing.T) {
	v, err := readNewPassword(&scriptedSecrets{answers: []string{"a", "a"}}, "New password")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	_, err = readNewPassword(&scriptedSecrets{answers: []string{"a", "b"}}, "New password")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = readNewPassword(&scriptedSecrets{answers: []string{""}}, "New password")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
