package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm_OpenSetsInitialFocus(t *testing.T) {
	for _, f := range []Focus{FocusConfirm, FocusCancel, FocusContainer} {
		d := New()
		require.NoError(t, d.Open(Options{InitialFocus: f}))
		assert.Equal(t, Idle, d.State())
		assert.Equal(t, f, d.Focus())
	}
}

func TestConfirm_OpenTwice(t *testing.T) {
	d := New()
	require.NoError(t, d.Open(Options{}))
	require.ErrorIs(t, d.Open(Options{}), ErrAlreadyOpen)
}

func TestConfirm_DefaultsLabels(t *testing.T) {
	d := New()
	require.NoError(t, d.Open(Options{}))
	assert.Equal(t, "Confirm", d.Options().ConfirmLabel)
	assert.Equal(t, "Cancel", d.Options().CancelLabel)
}

func TestConfirm_SuccessCloses(t *testing.T) {
	d := New()
	called := 0
	require.NoError(t, d.Open(Options{OnConfirm: func(context.Context) error { called++; return nil }}))

	require.NoError(t, d.Confirm(context.Background()))
	assert.Equal(t, 1, called)
	assert.Equal(t, Closed, d.State())
}

func TestConfirm_FailureReturnsToIdleWithError(t *testing.T) {
	d := New()
	boom := errors.New("boom")
	calls := 0
	require.NoError(t, d.Open(Options{OnConfirm: func(context.Context) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}}))

	require.ErrorIs(t, d.Confirm(context.Background()), boom)
	assert.Equal(t, Idle, d.State())
	assert.ErrorIs(t, d.Err(), boom)
	assert.True(t, d.ActionsEnabled())

	require.NoError(t, d.Confirm(context.Background()), "retry")
	assert.Equal(t, Closed, d.State())
	assert.NoError(t, d.Err())
}

func TestConfirm_BusyIgnoresDismissal(t *testing.T) {
	d := New()
	release := make(chan struct{})
	require.NoError(t, d.Open(Options{OnConfirm: func(context.Context) error {
		<-release
		return nil
	}}))

	done := make(chan error, 1)
	go func() { done <- d.Confirm(context.Background()) }()
	require.Eventually(t, func() bool { return d.State() == Busy }, time.Second, time.Millisecond)

	assert.False(t, d.ActionsEnabled())
	assert.False(t, d.Cancel())
	assert.False(t, d.Backdrop())
	assert.False(t, d.HandleKey(KeyEscape))
	assert.ErrorIs(t, d.Confirm(context.Background()), ErrBusy)
	assert.Equal(t, Busy, d.State())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Closed, d.State())
}

func TestConfirm_DismissIdle(t *testing.T) {
	tests := []struct {
		name    string
		dismiss func(*Confirm) bool
	}{
		{"cancel", (*Confirm).Cancel},
		{"backdrop", (*Confirm).Backdrop},
		{"escape", func(d *Confirm) bool { return d.HandleKey(KeyEscape) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			called := false
			require.NoError(t, d.Open(Options{OnConfirm: func(context.Context) error { called = true; return nil }}))

			assert.True(t, tt.dismiss(d))
			assert.Equal(t, Closed, d.State())
			assert.False(t, called)
		})
	}
}

func TestConfirm_ClosedRejectsConfirm(t *testing.T) {
	require.ErrorIs(t, New().Confirm(context.Background()), ErrNotOpen)
}

func TestConfirm_FocusTrap(t *testing.T) {
	tests := []struct {
		name  string
		start Focus
		keys  []Key
		want  Focus
	}{
		{"tab from confirm", FocusConfirm, []Key{KeyTab}, FocusCancel},
		{"tab wraps", FocusConfirm, []Key{KeyTab, KeyTab}, FocusConfirm},
		{"shift-tab from confirm wraps", FocusConfirm, []Key{KeyShiftTab}, FocusCancel},
		{"shift-tab from cancel", FocusCancel, []Key{KeyShiftTab}, FocusConfirm},
		{"container tab", FocusContainer, []Key{KeyTab}, FocusConfirm},
		{"container shift-tab", FocusContainer, []Key{KeyShiftTab}, FocusCancel},
		{"never leaves", FocusContainer, []Key{KeyTab, KeyTab, KeyTab, KeyShiftTab}, FocusCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			require.NoError(t, d.Open(Options{InitialFocus: tt.start}))
			for _, k := range tt.keys {
				require.True(t, d.HandleKey(k))
			}
			assert.Equal(t, tt.want, d.Focus())
		})
	}
}

func TestConfirm_KeysIgnoredWhenClosed(t *testing.T) {
	assert.False(t, New().HandleKey(KeyTab))
}
