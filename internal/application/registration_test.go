package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newTestFlow(auth *authStub, clock *stubClock) (*RegistrationFlow, *SessionStore, *notifierRecorder) {
	session := NewSessionStore(auth, zerolog.Nop())
	notifier := &notifierRecorder{}
	flow := NewRegistrationFlow(auth, session, notifier, clock, zerolog.Nop())
	return flow, session, notifier
}

func TestSubmitLoginSuccessSettlesAndClearsPassword(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		loginFn: func(_ context.Context, userID, password string) (domain.UserIdentity, string, error) {
			assert.Equal(t, "creator@example.com", userID)
			assert.Equal(t, "hunter2", password)
			return testIdentity(), "Welcome back!", nil
		},
	}
	flow, session, notifier := newTestFlow(auth, newStubClock())
	flow.SetForm(domain.RegistrationForm{Email: "creator@example.com", Password: "hunter2"})

	require.NoError(t, flow.SubmitLogin(context.Background()))

	assert.Equal(t, domain.PhaseSettled, flow.Phase())
	assert.Empty(t, flow.Form().Password)
	assert.True(t, session.IsAuthenticated())
	assert.Contains(t, notifier.all(), "success: Welcome back!")
}

func TestSubmitLoginRejectionSurfacesServerWordsVerbatim(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		loginFn: func(context.Context, string, string) (domain.UserIdentity, string, error) {
			return domain.UserIdentity{}, "", &apiErrStub{msg: "Invalid credentials"}
		},
	}
	flow, session, notifier := newTestFlow(auth, newStubClock())
	flow.SetForm(domain.RegistrationForm{Email: "creator@example.com", Password: "wrong"})

	require.Error(t, flow.SubmitLogin(context.Background()))

	assert.Equal(t, domain.PhaseLogin, flow.Phase())
	assert.Empty(t, flow.Form().Password, "the password is cleared on failure too")
	assert.Equal(t, "creator@example.com", flow.Form().Email)
	assert.False(t, session.IsAuthenticated())
	assert.Contains(t, notifier.all(), "error: Invalid credentials")
}

func TestSubmitLoginTransportFailureShowsConnectionMessage(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		loginFn: func(context.Context, string, string) (domain.UserIdentity, string, error) {
			return domain.UserIdentity{}, "", errors.New("dial tcp: connection refused")
		},
	}
	flow, _, notifier := newTestFlow(auth, newStubClock())
	flow.SetForm(domain.RegistrationForm{Email: "creator@example.com", Password: "pw"})

	require.Error(t, flow.SubmitLogin(context.Background()))

	assert.Contains(t, notifier.all(), "error: Connection failed. Is the server running?")
}

func TestRequestOTPSeedsShortInitialCooldown(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
	}
	flow, _, _ := newTestFlow(auth, newStubClock())
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})

	require.NoError(t, flow.RequestOTP(context.Background()))

	assert.Equal(t, domain.PhaseAwaitingOTP, flow.Phase())
	assert.Equal(t, 5, flow.CooldownSeconds())
}

func TestRequestOTPHonorsServerAdvisedCooldown(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 42, nil },
	}
	flow, _, _ := newTestFlow(auth, newStubClock())
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})

	require.NoError(t, flow.RequestOTP(context.Background()))

	assert.Equal(t, 42, flow.CooldownSeconds())
}

func TestResendDuringCooldownNeverTouchesTheNetwork(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
		resendOTPFn:  func(context.Context, string) (int, error) { return 0, nil },
	}
	flow, _, _ := newTestFlow(auth, newStubClock())
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))

	err := flow.ResendOTP(context.Background())

	require.ErrorIs(t, err, domain.ErrCooldownActive)
	_, resends := auth.callCounts()
	assert.Zero(t, resends)
}

func TestResendAfterCooldownRestartsAtFullWindow(t *testing.T) {
	t.Parallel()

	clock := newStubClock()
	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
		resendOTPFn:  func(context.Context, string) (int, error) { return 0, nil },
	}
	flow, _, notifier := newTestFlow(auth, clock)
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))

	clock.advance(5 * time.Second)
	require.NoError(t, flow.ResendOTP(context.Background()))

	assert.Equal(t, 60, flow.CooldownSeconds())
	assert.Contains(t, notifier.all(), "success: New OTP sent!")
}

func TestVerifyOTPRejectionKeepsFormAndCode(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
		verifyOTPFn: func(context.Context, domain.RegistrationForm, string) (domain.UserIdentity, error) {
			return domain.UserIdentity{}, &apiErrStub{msg: "Invalid OTP"}
		},
	}
	flow, session, _ := newTestFlow(auth, newStubClock())
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))
	flow.SetOTPInput("123456")

	require.Error(t, flow.VerifyOTP(context.Background()))

	assert.Equal(t, domain.PhaseAwaitingOTP, flow.Phase())
	assert.Equal(t, "123456", flow.OTPInput(), "a rejected code stays in the field for correction")
	assert.Equal(t, "creator", flow.Form().Username)
	assert.False(t, session.IsAuthenticated())
}

func TestVerifyOTPWithoutCodeIsRejectedLocally(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
	}
	flow, _, _ := newTestFlow(auth, newStubClock())
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))

	assert.Error(t, flow.VerifyOTP(context.Background()))
}

func TestVerifyOTPSuccessLogsInAndDefersBonusToast(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
		verifyOTPFn: func(context.Context, domain.RegistrationForm, string) (domain.UserIdentity, error) {
			return testIdentity(), nil
		},
	}
	flow, session, notifier := newTestFlow(auth, newStubClock())

	// Capture the deferred callback instead of waiting on a real timer.
	var deferred func()
	flow.afterFunc = func(d time.Duration, fn func()) *time.Timer {
		assert.Equal(t, 1500*time.Millisecond, d)
		deferred = fn
		return time.NewTimer(time.Hour)
	}

	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))
	flow.SetOTPInput("123456")

	require.NoError(t, flow.VerifyOTP(context.Background()))

	assert.Equal(t, domain.PhaseSettled, flow.Phase())
	assert.Empty(t, flow.OTPInput())
	assert.True(t, session.IsAuthenticated())
	assert.Contains(t, notifier.all(), "success: Account created!")
	assert.NotContains(t, notifier.all(), "success: Welcome bonus credits added to your account")

	require.NotNil(t, deferred)
	deferred()
	assert.Contains(t, notifier.all(), "success: Welcome bonus credits added to your account")
}

func TestCloseCancelsPendingBonusToast(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
		verifyOTPFn: func(context.Context, domain.RegistrationForm, string) (domain.UserIdentity, error) {
			return testIdentity(), nil
		},
	}
	flow, _, notifier := newTestFlow(auth, newStubClock())

	var deferred func()
	flow.afterFunc = func(_ time.Duration, fn func()) *time.Timer {
		deferred = fn
		return time.NewTimer(time.Hour)
	}

	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))
	flow.SetOTPInput("123456")
	require.NoError(t, flow.VerifyOTP(context.Background()))

	flow.Close()
	require.NotNil(t, deferred)
	deferred()

	assert.NotContains(t, notifier.all(), "success: Welcome bonus credits added to your account")
}

func TestBackKeepsTypedCredentials(t *testing.T) {
	t.Parallel()

	auth := &authStub{
		requestOTPFn: func(context.Context, domain.RegistrationForm) (int, error) { return 0, nil },
	}
	flow, _, _ := newTestFlow(auth, newStubClock())
	flow.SwitchMode()
	flow.SetForm(domain.RegistrationForm{Username: "creator", Email: "c@example.com", Password: "pw"})
	require.NoError(t, flow.RequestOTP(context.Background()))
	flow.SetOTPInput("1234")

	flow.Back()

	assert.Equal(t, domain.PhaseRegister, flow.Phase())
	assert.Empty(t, flow.OTPInput())
	assert.Equal(t, "creator", flow.Form().Username)
	assert.Equal(t, "pw", flow.Form().Password)
}

func TestSubmitLoginOutsideLoginPhaseIsRejected(t *testing.T) {
	t.Parallel()

	flow, _, _ := newTestFlow(&authStub{}, newStubClock())
	flow.SwitchMode()

	assert.Error(t, flow.SubmitLogin(context.Background()))
}
