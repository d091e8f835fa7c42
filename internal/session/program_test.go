// internal/session/program_test.go
package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/scanctl/internal/testutil/testlog"
)

type mockProgrammer struct {
	mock.Mock
	active bool
}

func (m *mockProgrammer) EnterProgrammingMode(ctx context.Context) error {
	err := m.Called(ctx).Error(0)
	if err == nil {
		m.active = true
	}
	return err
}

func (m *mockProgrammer) ExitProgrammingMode(ctx context.Context) error {
	err := m.Called(ctx).Error(0)
	if err == nil {
		m.active = false
	}
	return err
}

func (m *mockProgrammer) InProgrammingMode() bool { return m.active }

func TestWithProgrammingMode_Success(t *testing.T) {
	p := &mockProgrammer{}
	p.On("EnterProgrammingMode", mock.Anything).Return(nil).Once()
	p.On("ExitProgrammingMode", mock.Anything).Return(nil).Once()

	ran := false
	err := WithProgrammingMode(context.Background(), p, testlog.New(t), "test", func() error {
		ran = true
		assert.True(t, p.InProgrammingMode())
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	p.AssertExpectations(t)
}

func TestWithProgrammingMode_FailureStillRestores(t *testing.T) {
	p := &mockProgrammer{}
	p.On("EnterProgrammingMode", mock.Anything).Return(nil).Once()
	p.On("ExitProgrammingMode", mock.Anything).Return(nil).Once()

	cause := &FramingError{Command: "SIN", Reason: ReasonLength, Expected: 28, Actual: 3}
	err := WithProgrammingMode(context.Background(), p, testlog.New(t), "test", func() error {
		return cause
	})

	assert.Same(t, cause, err)
	assert.False(t, p.InProgrammingMode())
	p.AssertExpectations(t)
}

func TestWithProgrammingMode_RestoreFailureKeepsCause(t *testing.T) {
	p := &mockProgrammer{}
	p.On("EnterProgrammingMode", mock.Anything).Return(nil).Once()
	restoreErr := &TimeoutError{Command: "EPG"}
	p.On("ExitProgrammingMode", mock.Anything).Return(restoreErr).Once()

	cause := errors.New("chain broken")
	err := WithProgrammingMode(context.Background(), p, testlog.New(t), "test", func() error {
		return cause
	})

	var re *RestoreError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, cause)
	assert.Same(t, restoreErr, re.Restore)
	p.AssertExpectations(t)
}

func TestWithProgrammingMode_RestoresWithCancelledContext(t *testing.T) {
	p := &mockProgrammer{}
	p.On("EnterProgrammingMode", mock.Anything).Return(nil).Once()
	p.On("ExitProgrammingMode", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	})).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	err := WithProgrammingMode(ctx, p, testlog.New(t), "test", func() error {
		cancel()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	p.AssertExpectations(t)
}

func TestWithProgrammingMode_EnterFailureSkipsBody(t *testing.T) {
	p := &mockProgrammer{}
	p.On("EnterProgrammingMode", mock.Anything).Return(&ProtocolError{Command: "PRG", Reply: "NG"}).Once()

	err := WithProgrammingMode(context.Background(), p, testlog.New(t), "test", func() error {
		t.Fatal("body must not run")
		return nil
	})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	p.AssertNotCalled(t, "ExitProgrammingMode", mock.Anything)
}
