package client

import (
	"sync"
	"time"
)

type Modal string

const (
	ModalNone   Modal = ""
	ModalLogin  Modal = "login"
	ModalSignup Modal = "signup"
	ModalLogout Modal = "logout"
)

// DefaultModalTransition is the blank interval when switching between the
// login and signup modals, long enough for the exit/enter animation.
const DefaultModalTransition = 200 * time.Millisecond

// ModalCoordinator guarantees at most one auth modal is visible at a time.
type ModalCoordinator struct {
	mu            sync.Mutex
	active        Modal
	transitioning bool
	delay         time.Duration
	timer         *time.Timer
}

func NewModalCoordinator() *ModalCoordinator {
	return &ModalCoordinator{delay: DefaultModalTransition}
}

// SetTransitionDelay overrides the cross-fade delay. Zero means switches
// are immediate.
func (m *ModalCoordinator) SetTransitionDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// State reports the visible modal and whether a switch is in flight.
func (m *ModalCoordinator) State() (Modal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.transitioning
}

func (m *ModalCoordinator) OpenLogin() { m.open(ModalLogin) }

func (m *ModalCoordinator) OpenSignup() { m.open(ModalSignup) }

func (m *ModalCoordinator) OpenLogout() { m.open(ModalLogout) }

func (m *ModalCoordinator) Close() { m.open(ModalNone) }

// SwitchToLogin blanks the signup modal for the transition delay before
// showing login.
func (m *ModalCoordinator) SwitchToLogin() { m.switchTo(ModalLogin) }

// SwitchToSignup blanks the login modal for the transition delay before
// showing signup.
func (m *ModalCoordinator) SwitchToSignup() { m.switchTo(ModalSignup) }

func (m *ModalCoordinator) open(target Modal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimer()
	m.active = target
	m.transitioning = false
}

func (m *ModalCoordinator) switchTo(target Modal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimer()

	if m.delay == 0 {
		m.active = target
		m.transitioning = false
		return
	}

	m.active = ModalNone
	m.transitioning = true
	m.timer = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.transitioning {
			return
		}
		m.active = target
		m.transitioning = false
	})
}

func (m *ModalCoordinator) cancelTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
