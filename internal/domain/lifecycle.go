package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrIllegalTransition переход запрещён guard'ом машины состояний
// Оборачивается с человекочитаемой причиной.
var ErrIllegalTransition = errors.New("domain: illegal booking transition")

// StateMachine машина состояний бронирования.
//
// Каждый переход разбит на пару "guard" + "мутация": CanX считает
// предикат без побочных эффектов (UI может спросить "можно ли X" не
// меняя ничего), X проверяет guard и применяет смену статуса. Никакой
// переход не перепроверяет расписание или пересечения — только статус
// и таймстемпы.
//
// Реализация подставляется в сервис бронирований при конструировании,
// глобального состояния нет.
type StateMachine interface {
	CanConfirm(b *Booking, now time.Time) (bool, string)
	Confirm(b *Booking, now time.Time) error

	CanDecline(b *Booking, now time.Time) (bool, string)
	Decline(b *Booking, now time.Time) error

	// CanCancel дополнительно возвращает признак "поздней" отмены
	CanCancel(b *Booking, now time.Time, lateWindowHours int) (allowed bool, late bool, reason string)
	Cancel(b *Booking, now time.Time, lateWindowHours int) error

	CanExpire(b *Booking, now time.Time) (bool, string)
	Expire(b *Booking, now time.Time) error
}

// DefaultStateMachine стандартные правила переходов
type DefaultStateMachine struct{}

// NewDefaultStateMachine создает машину состояний со стандартными правилами
func NewDefaultStateMachine() *DefaultStateMachine {
	return &DefaultStateMachine{}
}

// CanConfirm PENDING -> CONFIRMED
func (sm *DefaultStateMachine) CanConfirm(b *Booking, now time.Time) (bool, string) {
	if b.Status == StatusConfirmed {
		return false, "booking already confirmed"
	}
	if b.Status != StatusPending {
		return false, fmt.Sprintf("cannot confirm a booking in status %s", b.Status)
	}
	if !b.StartDatetime.After(now) {
		return false, "cannot confirm a booking in the past"
	}
	if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false, "booking expired"
	}
	return true, ""
}

// Confirm применяет переход PENDING -> CONFIRMED
func (sm *DefaultStateMachine) Confirm(b *Booking, now time.Time) error {
	if ok, reason := sm.CanConfirm(b, now); !ok {
		return fmt.Errorf("%w: %s", ErrIllegalTransition, reason)
	}
	b.Status = StatusConfirmed
	return nil
}

// CanDecline PENDING -> DECLINED (отказ владельца площадки)
func (sm *DefaultStateMachine) CanDecline(b *Booking, now time.Time) (bool, string) {
	if b.Status != StatusPending {
		return false, fmt.Sprintf("cannot decline a booking in status %s", b.Status)
	}
	if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false, "booking already expired"
	}
	return true, ""
}

// Decline применяет переход PENDING -> DECLINED
func (sm *DefaultStateMachine) Decline(b *Booking, now time.Time) error {
	if ok, reason := sm.CanDecline(b, now); !ok {
		return fmt.Errorf("%w: %s", ErrIllegalTransition, reason)
	}
	b.Status = StatusDeclined
	return nil
}

// CanCancel {PENDING, CONFIRMED} -> CANCELLED | CANCELLED_LATE.
//
// Отмена "поздняя", если бронирование уже началось ЛИБО now строго
// позже порога start - lateWindowHours. Ровно на пороге отмена ещё
// считается своевременной.
func (sm *DefaultStateMachine) CanCancel(b *Booking, now time.Time, lateWindowHours int) (bool, bool, string) {
	if b.Status == StatusCancelled || b.Status == StatusCancelledLate {
		return false, false, "booking already cancelled"
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return false, false, fmt.Sprintf("cannot cancel a booking in status %s", b.Status)
	}
	if !now.Before(b.EndDatetime) {
		return false, false, "cannot cancel a booking that already ended"
	}

	lateThreshold := b.StartDatetime.Add(-time.Duration(lateWindowHours) * time.Hour)
	isLate := !now.Before(b.StartDatetime) || now.After(lateThreshold)
	return true, isLate, ""
}

// Cancel применяет отмену, выбирая CANCELLED или CANCELLED_LATE
func (sm *DefaultStateMachine) Cancel(b *Booking, now time.Time, lateWindowHours int) error {
	allowed, isLate, reason := sm.CanCancel(b, now, lateWindowHours)
	if !allowed {
		return fmt.Errorf("%w: %s", ErrIllegalTransition, reason)
	}
	if isLate {
		b.Status = StatusCancelledLate
	} else {
		b.Status = StatusCancelled
	}
	b.CancelledAt = &now
	return nil
}

// CanExpire PENDING -> EXPIRED (вызывается периодическим sweep'ом)
func (sm *DefaultStateMachine) CanExpire(b *Booking, now time.Time) (bool, string) {
	if b.Status != StatusPending {
		return false, "only pending bookings can expire"
	}
	if b.ExpiresAt == nil || b.ExpiresAt.After(now) {
		return false, "not yet expired"
	}
	return true, ""
}

// Expire применяет переход PENDING -> EXPIRED
func (sm *DefaultStateMachine) Expire(b *Booking, now time.Time) error {
	if ok, reason := sm.CanExpire(b, now); !ok {
		return fmt.Errorf("%w: %s", ErrIllegalTransition, reason)
	}
	b.Status = StatusExpired
	return nil
}
