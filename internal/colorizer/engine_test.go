// SPDX-License-Identifier: MPL-2.0

package colorizer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/colorit/colorit/internal/binding"
	"github.com/colorit/colorit/internal/iconsynth"
	"github.com/colorit/colorit/internal/ledger"
	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/internal/refresh"
	"github.com/colorit/colorit/internal/testutil"
	"github.com/colorit/colorit/pkg/ico"
	"github.com/colorit/colorit/pkg/tint"
)

// trace collects the collaborator calls of one Engine operation.
type trace struct{ calls []string }

type fakeSynth struct {
	t   *trace
	err error
}

func (f *fakeSynth) Synthesize(tint.ColorSpec) (*ico.Container, error) {
	f.t.calls = append(f.t.calls, "synthesize")
	if f.err != nil {
		return nil, f.err
	}
	return &ico.Container{Images: []ico.Image{{Size: 16, Data: []byte{1}}}}, nil
}

type fakeBinder struct {
	t         *trace
	err       error
	removeOut outcome.Outcome
}

func (f *fakeBinder) Apply(string, *ico.Container) error {
	f.t.calls = append(f.t.calls, "bind")
	return f.err
}

func (f *fakeBinder) Remove(string) outcome.Outcome {
	f.t.calls = append(f.t.calls, "unbind")
	return f.removeOut
}

type fakeInvalidator struct {
	t   *trace
	out outcome.Outcome
}

func (f *fakeInvalidator) Invalidate(context.Context, string) outcome.Outcome {
	f.t.calls = append(f.t.calls, "invalidate")
	return f.out
}

type fakeLedger struct {
	t   *trace
	err error
}

func (f *fakeLedger) Upsert(string, tint.ColorSpec) error {
	f.t.calls = append(f.t.calls, "upsert")
	return f.err
}

func (f *fakeLedger) Remove(string) error {
	f.t.calls = append(f.t.calls, "ledger-remove")
	return f.err
}

func (f *fakeLedger) List() ([]ledger.Entry, error) { return nil, f.err }

func (f *fakeLedger) ColorFor(string) (tint.ColorSpec, bool) { return tint.ColorSpec{}, false }

type fakes struct {
	trace       *trace
	synth       *fakeSynth
	binder      *fakeBinder
	invalidator *fakeInvalidator
	ledger      *fakeLedger
}

func newFakeEngine(t *testing.T) (*Engine, *fakes) {
	t.Helper()
	tr := &trace{}
	f := &fakes{
		trace:       tr,
		synth:       &fakeSynth{t: tr},
		binder:      &fakeBinder{t: tr},
		invalidator: &fakeInvalidator{t: tr},
		ledger:      &fakeLedger{t: tr},
	}
	e, err := New(Dependencies{Synthesizer: f.synth, Binder: f.binder, Invalidator: f.invalidator, Ledger: f.ledger})
	require.NoError(t, err)
	return e, f
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(Dependencies{})
	require.ErrorIs(t, err, ErrMissingDependency)
}

func TestApplyOrder(t *testing.T) {
	t.Parallel()

	e, f := newFakeEngine(t)
	out, err := e.Apply(context.Background(), t.TempDir(), tint.RGB(1, 2, 3))
	require.NoError(t, err)
	require.True(t, out.OK())
	require.Equal(t, []string{"synthesize", "bind", "invalidate", "upsert"}, f.trace.calls)
}

func TestApplyHardFailuresStop(t *testing.T) {
	t.Parallel()

	t.Run("synthesis", func(t *testing.T) {
		t.Parallel()
		e, f := newFakeEngine(t)
		f.synth.err = errors.New("render failed")

		_, err := e.Apply(context.Background(), t.TempDir(), tint.RGB(1, 2, 3))
		require.ErrorContains(t, err, "render failed")
		require.Equal(t, []string{"synthesize"}, f.trace.calls)
	})

	t.Run("binding", func(t *testing.T) {
		t.Parallel()
		e, f := newFakeEngine(t)
		f.binder.err = &outcome.PermissionDeniedError{Op: "write icon", Path: "x", Err: fs.ErrPermission}

		_, err := e.Apply(context.Background(), t.TempDir(), tint.RGB(1, 2, 3))
		require.ErrorIs(t, err, outcome.ErrPermissionDenied)
		require.Equal(t, []string{"synthesize", "bind"}, f.trace.calls)
	})
}

func TestApplySoftFailuresDoNotFail(t *testing.T) {
	t.Parallel()

	e, f := newFakeEngine(t)
	f.invalidator.out.RecordReason(refresh.StepHelper, outcome.ReasonTimeout, refresh.ErrHelperTimeout)
	f.ledger.err = fs.ErrPermission

	out, err := e.Apply(context.Background(), t.TempDir(), tint.RGB(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, "rebuild-helper(timeout), ledger-upsert(permission)", out.String())
}

func TestRemoveNeverFails(t *testing.T) {
	t.Parallel()

	e, f := newFakeEngine(t)
	f.binder.removeOut.Record(binding.StepIcon, fs.ErrPermission)
	f.invalidator.out.Record(refresh.StepNotifyAssoc, errors.ErrUnsupported)
	f.ledger.err = errors.New("disk full")

	out, err := e.Remove(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, []string{"unbind", "invalidate", "ledger-remove"}, f.trace.calls)
	require.Len(t, out.Failures, 3)
}

// quietNotifier accepts every shell call without touching the host.
type quietNotifier struct{}

func (quietNotifier) ClearCaches() error                             { return nil }
func (quietNotifier) NotifyScoped(string, refresh.ChangeEvent) error { return nil }
func (quietNotifier) NotifyGlobal(refresh.GlobalEvent) error         { return nil }
func (quietNotifier) TouchTimestamp(string) error                    { return nil }
func (quietNotifier) RefreshOpenViews(string) error                  { return nil }

// newRealEngine wires the production components with an in-memory
// attribute store and a notifier that leaves the host shell alone.
func newRealEngine(t *testing.T) (*Engine, *binding.Binder, *binding.MemoryAttributes, *testutil.FakeClock, string) {
	t.Helper()

	attrs := binding.NewMemoryAttributes()
	binder, err := binding.New(binding.DefaultConfig(), binding.WithAttributes(attrs))
	require.NoError(t, err)

	clock := testutil.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	inv := refresh.New(refresh.DefaultConfig(), quietNotifier{}, refresh.WithClock(clock))

	ledgerPath := filepath.Join(t.TempDir(), ledger.DefaultFileName)
	l, out := ledger.Open(ledgerPath, ledger.WithNow(clock.Now))
	require.True(t, out.OK())

	e, err := New(Dependencies{
		Synthesizer: iconsynth.New(),
		Binder:      binder,
		Invalidator: inv,
		Ledger:      l,
	})
	require.NoError(t, err)
	return e, binder, attrs, clock, ledgerPath
}

func TestApplyTwiceKeepsOneEntry(t *testing.T) {
	t.Parallel()

	e, _, _, clock, _ := newRealEngine(t)
	dir := t.TempDir()

	out, err := e.Apply(context.Background(), dir, tint.RGB(231, 76, 60))
	require.NoError(t, err)
	require.True(t, out.OK(), "outcome: %v", out)
	clock.Advance(time.Hour)
	second := tint.RGB(46, 204, 113)
	_, err = e.Apply(context.Background(), dir, second)
	require.NoError(t, err)

	entries, out := e.ListHistory()
	require.True(t, out.OK())
	require.Len(t, entries, 1)
	require.Equal(t, second.Hex(), entries[0].ColorHex)
	require.True(t, entries[0].ColoredDate.Equal(clock.Now()))

	got, ok := e.ColorFor(dir)
	require.True(t, ok)
	require.Equal(t, second, got)
}

func TestApplyRemoveEndToEnd(t *testing.T) {
	t.Parallel()

	e, binder, attrs, _, _ := newRealEngine(t)
	dir := t.TempDir()
	before, err := attrs.Get(dir)
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), dir, tint.RGB(52, 152, 219))
	require.NoError(t, err)
	require.True(t, binder.Bound(dir))

	data, err := os.ReadFile(binder.IconPath(dir))
	require.NoError(t, err)
	c, err := ico.Decode(data)
	require.NoError(t, err)
	require.Equal(t, ico.CanonicalSizes, c.Sizes())

	_, err = e.Remove(context.Background(), dir)
	require.NoError(t, err)
	require.False(t, binder.Bound(dir))

	after, err := attrs.Get(dir)
	require.NoError(t, err)
	require.Equal(t, before, after)

	_, ok := e.ColorFor(dir)
	require.False(t, ok)
}

func TestApplyMissingFolder(t *testing.T) {
	t.Parallel()

	e, _, _, _, ledgerPath := newRealEngine(t)
	_, err := e.Apply(context.Background(), filepath.Join(t.TempDir(), "missing"), tint.RGB(1, 1, 1))
	require.ErrorIs(t, err, outcome.ErrNotFound)

	_, statErr := os.Stat(ledgerPath)
	require.ErrorIs(t, statErr, fs.ErrNotExist, "a failed apply must not touch the ledger")
}

func TestRemoveUnknownFolder(t *testing.T) {
	t.Parallel()

	e, _, _, _, _ := newRealEngine(t)
	_, err := e.Remove(context.Background(), t.TempDir())
	require.NoError(t, err)

	_, ok := e.ColorFor(t.TempDir())
	require.False(t, ok)
}

func TestForget(t *testing.T) {
	t.Parallel()

	e, binder, _, _, _ := newRealEngine(t)
	dir := t.TempDir()
	_, err := e.Apply(context.Background(), dir, tint.RGB(241, 196, 15))
	require.NoError(t, err)

	require.NoError(t, e.Forget(dir))
	_, ok := e.ColorFor(dir)
	require.False(t, ok)
	require.True(t, binder.Bound(dir), "Forget must leave the folder alone")
}
