package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(input string) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	c := New(
		WithOutput(&out),
		WithErrorOutput(&errOut),
		WithInput(strings.NewReader(input)),
		WithStyle(false),
	)

	return c, &out, &errOut
}

func TestNewDetectsNonTerminal(t *testing.T) {
	var out bytes.Buffer

	c := New(WithOutput(&out))
	assert.False(t, c.Styled())
	assert.Same(t, &out, c.Out())
}

func TestPaint(t *testing.T) {
	plain, _, _ := newTestConsole("")
	assert.Equal(t, "high", plain.Paint("high", StyleRed))

	styled := New(WithOutput(&bytes.Buffer{}), WithStyle(true))
	painted := styled.Paint("high", StyleRed)
	assert.NotEqual(t, "high", painted)
	assert.Contains(t, painted, "high")
	assert.Contains(t, painted, "\x1b[")

	assert.Equal(t, "high", styled.Paint("high", StyleNone))
	assert.Equal(t, "high", Plain("high", StyleBoldRed))
}

func TestStreams(t *testing.T) {
	c, out, errOut := newTestConsole("")

	c.Printf("Scan started on %s.", "example.com")
	c.Warnf("still running")
	c.Infof("redirected")
	c.Errorf("Scan not found.")
	c.Notef("written to console")

	assert.Equal(t, "Scan started on example.com.\nstill running\n", out.String())
	assert.Equal(t, "redirected\nScan not found.\nwritten to console\n", errOut.String())
}

func TestAsk(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "answer with newline", input: "other.json\n", expected: "other.json"},
		{name: "answer without newline", input: "other.json", expected: "other.json"},
		{name: "blank answer", input: "\n", expected: ""},
		{name: "surrounding spaces", input: "  other.json  \r\n", expected: "other.json"},
		{name: "closed input", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, out, errOut := newTestConsole(tc.input)

			answer, err := c.Ask("Enter another file name")
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoInput))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, answer)
			assert.Equal(t, "Enter another file name: ", errOut.String())
			assert.Empty(t, out.String())
		})
	}
}

func TestPlainProgress(t *testing.T) {
	c, out, errOut := newTestConsole("")
	p := c.NewProgress("Scanning...")

	require.NoError(t, p.Set(10))
	require.NoError(t, p.Set(10))
	require.NoError(t, p.Set(55))
	require.NoError(t, p.Finish())

	assert.Empty(t, out.String())
	assert.Equal(t, "Scanning... 10%\nScanning... 55%\nScanning... 100%\n", errOut.String())
}

func TestProgressFollowsErrorStream(t *testing.T) {
	var out, errOut bytes.Buffer

	// styling requested for the result stream does not make a redirected
	// error stream animated
	c := New(WithOutput(&out), WithErrorOutput(&errOut), WithStyle(true))
	require.True(t, c.Styled())

	p := c.NewProgress("Scanning...")
	require.NoError(t, p.Set(30))
	require.NoError(t, p.Finish())

	assert.Equal(t, "Scanning... 30%\nScanning... 100%\n", errOut.String())
	assert.NotContains(t, errOut.String(), "\x1b[")
	assert.NotContains(t, errOut.String(), "\r")
	assert.Empty(t, out.String())
}
