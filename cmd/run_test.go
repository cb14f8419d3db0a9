package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/output"
	"github.com/vulnissimo/vulnissimo/internal/slack"
	"github.com/vulnissimo/vulnissimo/internal/target"
	"github.com/vulnissimo/vulnissimo/internal/testutil"
	"github.com/vulnissimo/vulnissimo/internal/types"
	"github.com/vulnissimo/vulnissimo/internal/vulnissimo"
)

// fakeScanner replays snapshots, repeating the last one once exhausted
type fakeScanner struct {
	snapshots []*types.ScanResult
	createErr error
	fetchErr  error
	targets   []string
	fetches   int
}

func (f *fakeScanner) CreateScan(_ context.Context, target string) (*types.ScanCreated, error) {
	f.targets = append(f.targets, target)

	if f.createErr != nil {
		return nil, f.createErr
	}

	return &types.ScanCreated{
		ID:         testutil.SampleScanID,
		HTMLResult: "https://vulnissimo.io/scans/" + testutil.SampleScanID.String(),
	}, nil
}

func (f *fakeScanner) FetchScanResult(_ context.Context, _ uuid.UUID) (*types.ScanResult, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	snapshot := f.snapshots[min(f.fetches, len(f.snapshots)-1)]
	f.fetches++

	return snapshot, nil
}

type recordingNotifier struct {
	sent []slack.Message
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, msg slack.Message) error {
	r.sent = append(r.sent, msg)

	return r.err
}

type harness struct {
	console *console.Console
	out     *output.Outputter
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	c := console.New(
		console.WithOutput(stdout),
		console.WithErrorOutput(stderr),
		console.WithInput(strings.NewReader("")),
		console.WithStyle(false),
	)

	out, err := output.New("", output.FormatJSON, 2, output.WithConsole(c))
	require.NoError(t, err)

	return &harness{console: c, out: out, stdout: stdout, stderr: stderr}
}

func scanSnapshots() []*types.ScanResult {
	first := testutil.RunningScanResult(10)
	first.ScanInfo.RedirectTarget = nil

	return []*types.ScanResult{
		first,
		testutil.RunningScanResult(40),
		testutil.RunningScanResult(70),
		testutil.SampleScanResult(),
	}
}

func mustParseTarget(t *testing.T, input string) *target.Info {
	t.Helper()

	info, err := target.Parse(input)
	require.NoError(t, err)

	return info
}

func TestRunScan(t *testing.T) {
	h := newHarness(t)
	api := &fakeScanner{snapshots: scanSnapshots()}
	n := &recordingNotifier{}

	result, err := runScan(context.Background(), api, h.console, h.out, mustParseTarget(t, " http://example.com "), runOptions{notifier: n})
	require.NoError(t, err)

	assert.Equal(t, []string{"http://example.com"}, api.targets)
	assert.Equal(t, 4, api.fetches)
	assert.Equal(t, types.ScanStatusFinished, result.ScanInfo.Status)

	var rendered types.ScanResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &rendered))
	assert.Equal(t, *testutil.SampleScanResult(), rendered)

	stderr := h.stderr.String()
	assert.Contains(t, stderr, "Scan started on http://example.com.\nSee live updates at https://vulnissimo.io/scans/"+testutil.SampleScanID.String()+".\n")
	assert.Equal(t, 1, strings.Count(stderr, "Target redirected. Now scanning https://www.example.com."))
	assert.Contains(t, stderr, "Scanning... 10%\n")
	assert.Contains(t, stderr, "Scanning... 40%\n")
	assert.Contains(t, stderr, "Scanning... 100%\n")
	assert.Contains(t, stderr, "Scan finished.\nScan result was written to the console.\n")

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0].Text, "http://example.com")
}

func TestRunScan_CreateFailure(t *testing.T) {
	h := newHarness(t)
	apiErr := &vulnissimo.APIError{StatusCode: 429, Message: "Could not start scan: Rate limit exceeded"}
	api := &fakeScanner{createErr: apiErr}

	_, err := runScan(context.Background(), api, h.console, h.out, mustParseTarget(t, "example.com"), runOptions{})

	var got *vulnissimo.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "Could not start scan: Rate limit exceeded", got.Message)
	assert.Empty(t, h.stdout.String())
	assert.NotContains(t, h.stderr.String(), "Scan started")
}

func TestRunScan_FetchFailure(t *testing.T) {
	h := newHarness(t)
	fetchErr := &vulnissimo.APIError{StatusCode: 404, Message: "Could not fetch scan result: Scan not found."}
	api := &fakeScanner{fetchErr: fetchErr}
	n := &recordingNotifier{}

	_, err := runScan(context.Background(), api, h.console, h.out, mustParseTarget(t, "example.com"), runOptions{notifier: n})
	assert.ErrorIs(t, err, fetchErr)
	assert.Empty(t, h.stdout.String())
	assert.Empty(t, n.sent)
}

func TestRunScan_NotificationFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	api := &fakeScanner{snapshots: []*types.ScanResult{testutil.SampleScanResult()}}
	n := &recordingNotifier{err: slack.ErrUnexpectedStatus}

	_, err := runScan(context.Background(), api, h.console, h.out, mustParseTarget(t, "example.com"), runOptions{notifier: n})
	require.NoError(t, err)
	assert.Len(t, n.sent, 1)
	assert.NotEmpty(t, h.stdout.String())
}

func TestRunScan_Cancelled(t *testing.T) {
	h := newHarness(t)
	api := &fakeScanner{snapshots: []*types.ScanResult{testutil.RunningScanResult(50)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runScan(ctx, api, h.console, h.out, mustParseTarget(t, "example.com"), runOptions{interval: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.stdout.String())
}

func TestGetScan(t *testing.T) {
	h := newHarness(t)
	running := testutil.RunningScanResult(35)
	api := &fakeScanner{snapshots: []*types.ScanResult{running}}

	err := getScan(context.Background(), api, h.out, testutil.SampleScanID)
	require.NoError(t, err)
	assert.Equal(t, 1, api.fetches)

	var rendered types.ScanResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &rendered))
	assert.Equal(t, *running, rendered)
}

func TestGetScan_Failure(t *testing.T) {
	h := newHarness(t)
	fetchErr := &vulnissimo.APIError{StatusCode: 404, Message: "Could not fetch scan result: Scan not found."}
	api := &fakeScanner{fetchErr: fetchErr}

	err := getScan(context.Background(), api, h.out, testutil.SampleScanID)
	assert.ErrorIs(t, err, fetchErr)
	assert.Empty(t, h.stdout.String())
}
