package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"codeberg.org/mutker/procmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	factory := errors.New()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "default message",
			err:  factory.New(errors.ErrInvalidWindow),
			want: "Observation window outside supported range",
		},
		{
			name: "custom message",
			err:  factory.WithMessage(errors.ErrDomain, "target must not be zero"),
			want: "target must not be zero",
		},
		{
			name: "wrapped cause",
			err:  factory.Wrap(errors.ErrReadConfig, stderrors.New("permission denied")),
			want: "Failed to read configuration: permission denied",
		},
		{
			name: "data payload",
			err:  factory.WithData(errors.ErrInvalidWindow, 200),
			want: "Observation window outside supported range: 200",
		},
		{
			name: "unregistered code",
			err:  factory.New(errors.ErrorCode("something_else")),
			want: "something_else",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestWithMessageKeepsCodeAndCause(t *testing.T) {
	cause := stderrors.New("boom")
	base := errors.New().Wrap(errors.ErrInternal, cause)

	derived := base.WithMessage("rendering failed")

	assert.Equal(t, errors.ErrInternal, derived.Code())
	assert.ErrorIs(t, derived, cause)
	assert.Equal(t, "rendering failed: boom", derived.Error())
	assert.Equal(t, "Internal error occurred: boom", base.Error())
}

func TestHasCodeAndCodeOf(t *testing.T) {
	inner := errors.New().New(errors.ErrDomain)
	outer := errors.New().Wrap(errors.ErrInvalidArgument, inner)
	wrapped := fmt.Errorf("evaluate: %w", outer)

	assert.True(t, errors.HasCode(wrapped, errors.ErrDomain))
	assert.True(t, errors.HasCode(wrapped, errors.ErrInvalidArgument))
	assert.False(t, errors.HasCode(wrapped, errors.ErrInvalidWindow))
	assert.False(t, errors.HasCode(nil, errors.ErrDomain))

	assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(wrapped))
	assert.Equal(t, errors.ErrorCode(""), errors.CodeOf(stderrors.New("plain")))
}

func TestGetData(t *testing.T) {
	err := errors.New().WithData(errors.ErrInvalidWindow, struct{ Hours int }{Hours: 0})

	data, ok := err.GetData().(struct{ Hours int })
	require.True(t, ok)
	assert.Equal(t, 0, data.Hours)
}

func TestErrorRendersDataAndCause(t *testing.T) {
	err := errors.New().Wrap(errors.ErrReadConfig, stderrors.New("permission denied")).
		WithData("/etc/procmon.toml")

	assert.Equal(t, "Failed to read configuration: /etc/procmon.toml: permission denied", err.Error())
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := errors.New().New(errors.ErrUnknownParameter)
	err := fmt.Errorf("lookup: %w", errors.New().WithData(errors.ErrUnknownParameter, "viscosity"))

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, errors.New().New(errors.ErrDomain))
}

func TestEveryCodeHasMessage(t *testing.T) {
	for _, code := range []errors.ErrorCode{
		errors.ErrInternal, errors.ErrInvalidArgument,
		errors.ErrInvalidConfig, errors.ErrBindFlags, errors.ErrReadConfig, errors.ErrInvalidLogLevel,
		errors.ErrInvalidWindow, errors.ErrDomain, errors.ErrUnknownParameter,
		errors.ErrShutdownFailed, errors.ErrInitApp, errors.ErrAlreadyRunning, errors.ErrPIDFile,
		errors.ErrUnknownCommand, errors.ErrEncodeOutput, errors.ErrInitMetrics,
		errors.ErrListenFailed, errors.ErrNotFound, errors.ErrMethodNotAllowed,
	} {
		assert.NotEqual(t, string(code), errors.GetErrorMessage(code), code)
	}
}
