// Package outcome modela el resultado de una llamada al backend remoto como un tipo
// explícito de cuatro ramas, en lugar de propagar errores para decidir el fallback.
//
//   - OK:          respuesta válida del remoto.
//   - NotFound:    el remoto respondió con autoridad que el id no existe (no hay fallback).
//   - Rejected:    el remoto rechazó la operación (duplicado, FK, check); no hay fallback.
//   - Unavailable: conectividad, tabla inexistente, permisos, respuesta malformada; dispara fallback.
package outcome

import (
	"errors"
	"fmt"

	"github.com/jhoicas/relojeria-admin/internal/domain"
)

// Kind rama del resultado.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindRejected
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindRejected:
		return "rejected"
	case KindUnavailable:
		return "unavailable"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Result valor o motivo de una llamada remota.
type Result[T any] struct {
	Value T
	Kind  Kind
	Err   error
}

// OK resultado exitoso.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Kind: KindOK}
}

// NotFound respuesta autoritativa de inexistencia. err se envuelve en domain.ErrNotFound si no lo está.
func NotFound[T any](err error) Result[T] {
	if err == nil {
		err = domain.ErrNotFound
	} else if !errors.Is(err, domain.ErrNotFound) {
		err = fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return Result[T]{Kind: KindNotFound, Err: err}
}

// Rejected rechazo autoritativo del remoto (err debe ser un error de dominio).
func Rejected[T any](err error) Result[T] {
	return Result[T]{Kind: KindRejected, Err: err}
}

// Unavailable el remoto no pudo atender la llamada; reason describe la causa.
func Unavailable[T any](reason error) Result[T] {
	if reason == nil {
		reason = domain.ErrRemoteUnavailable
	} else if !errors.Is(reason, domain.ErrRemoteUnavailable) && !errors.Is(reason, domain.ErrRemoteNotConfigured) {
		reason = fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, reason)
	}
	return Result[T]{Kind: KindUnavailable, Err: reason}
}

// Map transforma el valor de un resultado OK conservando las demás ramas.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.Kind != KindOK {
		return Result[U]{Kind: r.Kind, Err: r.Err}
	}
	return OK(fn(r.Value))
}

// Authoritative indica si el remoto dio una respuesta definitiva (OK, NotFound o Rejected).
func (r Result[T]) Authoritative() bool {
	return r.Kind != KindUnavailable
}
