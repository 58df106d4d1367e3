package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

const (
	// First OTP request gets a short grace before resend is offered; an
	// actual resend backs off much harder to discourage hammering the
	// mailer. The asymmetry is deliberate.
	initialOTPCooldown = 5 * time.Second
	resendOTPCooldown  = 60 * time.Second

	// The bonus toast trails the primary success toast so they don't
	// overlap.
	bonusToastDelay = 1500 * time.Millisecond

	connectionFailedMsg = "Connection failed. Is the server running?"
)

var errOTPRequired = errors.New("enter the code from your email")

// RegistrationFlow drives the credentials → OTP → settled wizard. The typed
// form survives every transition; only settlement or an explicit step back
// clears the OTP input. Network failures return the machine to its pre-call
// state.
type RegistrationFlow struct {
	auth     ports.AuthAPI
	session  *SessionStore
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger

	afterFunc func(time.Duration, func()) *time.Timer

	mu            sync.Mutex
	phase         domain.RegistrationPhase
	form          domain.RegistrationForm
	otpInput      string
	cooldownUntil time.Time
	timers        []*time.Timer
	closed        bool
}

func NewRegistrationFlow(auth ports.AuthAPI, session *SessionStore, notifier ports.Notifier, clock ports.Clock, log zerolog.Logger) *RegistrationFlow {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RegistrationFlow{
		auth:      auth,
		session:   session,
		notifier:  notifier,
		clock:     clock,
		log:       log,
		afterFunc: time.AfterFunc,
		phase:     domain.PhaseLogin,
	}
}

func (f *RegistrationFlow) Phase() domain.RegistrationPhase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *RegistrationFlow) Form() domain.RegistrationForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *RegistrationFlow) SetForm(form domain.RegistrationForm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = form
}

func (f *RegistrationFlow) SetOTPInput(otp string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otpInput = otp
}

func (f *RegistrationFlow) OTPInput() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otpInput
}

// SwitchMode toggles between the login and register credential screens.
// Typed fields are kept.
func (f *RegistrationFlow) SwitchMode() {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.phase {
	case domain.PhaseLogin:
		f.phase = domain.PhaseRegister
	case domain.PhaseRegister:
		f.phase = domain.PhaseLogin
	}
}

// SubmitLogin authenticates with the typed identifier and password. On
// success the identity lands in the session store and the flow settles; on
// any failure the flow stays on the login screen with the reason surfaced.
// The password is cleared either way.
func (f *RegistrationFlow) SubmitLogin(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != domain.PhaseLogin {
		f.mu.Unlock()
		return fmt.Errorf("login submit in phase %q", f.phase)
	}
	form := f.form
	f.mu.Unlock()

	identity, message, err := f.auth.Login(ctx, form.Email, form.Password)

	f.mu.Lock()
	f.form.Password = ""
	if err != nil {
		f.mu.Unlock()
		f.notifyFailure(err, "Authentication failed")
		return err
	}
	f.phase = domain.PhaseSettled
	f.mu.Unlock()

	f.session.Login(identity)
	if message == "" {
		message = "Success!"
	}
	f.notifier.Success(message)
	return nil
}

// RequestOTP submits the registration form and moves to OTP entry. The
// resend cooldown is seeded from the server's advice, or a short default.
func (f *RegistrationFlow) RequestOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != domain.PhaseRegister {
		f.mu.Unlock()
		return fmt.Errorf("otp request in phase %q", f.phase)
	}
	form := f.form
	f.mu.Unlock()

	retryAfter, err := f.auth.RequestRegistrationOTP(ctx, form)
	if err != nil {
		f.notifyFailure(err, "Could not send OTP")
		return err
	}

	f.mu.Lock()
	f.phase = domain.PhaseAwaitingOTP
	f.seedCooldownLocked(retryAfter, initialOTPCooldown)
	f.mu.Unlock()

	f.notifier.Success("OTP sent! Check your email.")
	return nil
}

// VerifyOTP settles the registration. A rejected code keeps the flow (and
// the typed code) on the OTP step; success logs the user in and schedules
// the deferred welcome-bonus toast.
func (f *RegistrationFlow) VerifyOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != domain.PhaseAwaitingOTP {
		f.mu.Unlock()
		return fmt.Errorf("otp verify in phase %q", f.phase)
	}
	if f.otpInput == "" {
		f.mu.Unlock()
		return errOTPRequired
	}
	form := f.form
	otp := f.otpInput
	f.mu.Unlock()

	identity, err := f.auth.VerifyRegistrationOTP(ctx, form, otp)
	if err != nil {
		f.notifyFailure(err, "Invalid code, try again")
		return err
	}

	f.mu.Lock()
	f.phase = domain.PhaseSettled
	f.otpInput = ""
	f.mu.Unlock()

	f.session.Login(identity)
	f.notifier.Success("Account created!")
	f.deferNotify(bonusToastDelay, "Welcome bonus credits added to your account")
	return nil
}

// ResendOTP is a no-op on the network while the cooldown is running. A
// successful resend restarts the cooldown at the longer duration.
func (f *RegistrationFlow) ResendOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != domain.PhaseAwaitingOTP {
		f.mu.Unlock()
		return fmt.Errorf("otp resend in phase %q", f.phase)
	}
	if f.cooldownRemainingLocked() > 0 {
		f.mu.Unlock()
		return domain.ErrCooldownActive
	}
	email := f.form.Email
	f.mu.Unlock()

	retryAfter, err := f.auth.ResendRegistrationOTP(ctx, email)
	if err != nil {
		f.notifyFailure(err, "Failed to resend")
		return err
	}

	f.mu.Lock()
	f.seedCooldownLocked(retryAfter, resendOTPCooldown)
	f.mu.Unlock()

	f.notifier.Success("New OTP sent!")
	return nil
}

// Back abandons OTP entry and returns to the register screen. Typed
// credentials are preserved; the code is discarded.
func (f *RegistrationFlow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != domain.PhaseAwaitingOTP {
		return
	}
	f.phase = domain.PhaseRegister
	f.otpInput = ""
}

// CooldownSeconds is the whole seconds left before resend unlocks. Never
// negative. This countdown is cosmetic spam protection; the server-side OTP
// validity window is a separate, authoritative clock.
func (f *RegistrationFlow) CooldownSeconds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cooldownRemainingLocked()
}

// Close tears the flow down with its owning view: pending deferred toasts
// are cancelled and late callbacks become no-ops.
func (f *RegistrationFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for _, t := range f.timers {
		t.Stop()
	}
	f.timers = nil
}

func (f *RegistrationFlow) cooldownRemainingLocked() int {
	remaining := f.cooldownUntil.Sub(f.clock.Now())
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

func (f *RegistrationFlow) seedCooldownLocked(advisedSeconds int, fallback time.Duration) {
	d := fallback
	if advisedSeconds > 0 {
		d = time.Duration(advisedSeconds) * time.Second
	}
	f.cooldownUntil = f.clock.Now().Add(d)
}

func (f *RegistrationFlow) deferNotify(delay time.Duration, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	timer := f.afterFunc(delay, func() {
		f.mu.Lock()
		closed := f.closed
		f.mu.Unlock()
		if closed {
			return
		}
		f.notifier.Success(msg)
	})
	f.timers = append(f.timers, timer)
}

func (f *RegistrationFlow) notifyFailure(err error, fallback string) {
	if msg := serverMessage(err); msg != "" {
		f.notifier.Error(msg)
		return
	}
	if isServerError(err) {
		f.notifier.Error(fallback)
		return
	}
	f.log.Debug().Err(err).Msg("registration call failed before reaching the server")
	f.notifier.Error(connectionFailedMsg)
}
