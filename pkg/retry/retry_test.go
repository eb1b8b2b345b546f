package retry_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinivac/npwt-inventario/pkg/retry"
)

// timeoutError simula un net.Error de timeout.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var errNegocio = errors.New("stock insuficiente")

func fastOpts() retry.Options {
	return retry.Options{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestDo_ReintentaTransitoriosHastaExito(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastOpts(), nil, func() error {
		calls++
		if calls < 3 {
			return timeoutError{}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_AgotaIntentosYDevuelveUltimoError(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastOpts(), nil, func() error {
		calls++
		return timeoutError{}
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls, "MaxAttempts incluye el primer intento")
}

func TestDo_ErrorDeNegocioNoSeReintenta(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastOpts(), nil, func() error {
		calls++
		return errNegocio
	})

	assert.ErrorIs(t, err, errNegocio)
	assert.Equal(t, 1, calls)
}

func TestDo_RespetaCancelacionEntreIntentos(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opts := retry.Options{MaxAttempts: 5, BaseDelay: 50 * time.Millisecond}

	calls := 0
	err := retry.Do(ctx, opts, nil, func() error {
		calls++
		cancel() // se cancela mientras espera el backoff
		return timeoutError{}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_ClassifyPersonalizado(t *testing.T) {
	retryable := errors.New("serialization failure")
	calls := 0
	err := retry.Do(context.Background(), fastOpts(), func(err error) bool {
		return errors.Is(err, retryable)
	}, func() error {
		calls++
		if calls < 2 {
			return retryable
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, retry.IsTransient(nil))
	assert.False(t, retry.IsTransient(errNegocio))
	assert.True(t, retry.IsTransient(timeoutError{}))
	assert.True(t, retry.IsTransient(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))
	assert.True(t, retry.IsTransient(errors.Join(errNegocio, timeoutError{})), "errores envueltos también clasifican")
}
