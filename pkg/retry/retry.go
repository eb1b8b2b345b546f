// Package retry implementa el reintento con backoff exponencial acotado que se
// aplica uniformemente a lecturas y escrituras contra el almacén cuando el
// fallo es de clase red (timeouts, conexión rechazada). Los errores de negocio
// no se reintentan.
package retry

import (
	"context"
	"errors"
	"net"
	"time"
)

// Options parámetros del reintento.
type Options struct {
	MaxAttempts int           // intentos totales, incluido el primero
	BaseDelay   time.Duration // espera tras el primer fallo; se duplica en cada intento
	MaxDelay    time.Duration // tope de la espera
}

// DefaultOptions 3 intentos, 100ms base, 2s tope.
func DefaultOptions() Options {
	return Options{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond, MaxDelay: 2 * time.Second}
}

// IsTransient reporta si el error es de clase red y por tanto reintentable:
// net.Error con timeout, o errores de conexión del sistema operativo.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// Do ejecuta fn hasta opts.MaxAttempts veces mientras el error sea transitorio
// según classify (nil = IsTransient). Respeta la cancelación del contexto entre
// intentos y devuelve el último error observado.
func Do(ctx context.Context, opts Options, classify func(error) bool, fn func() error) error {
	if classify == nil {
		classify = IsTransient
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}

	delay := opts.BaseDelay
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || attempt >= opts.MaxAttempts || !classify(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
}
