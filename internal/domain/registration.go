package domain

type RegistrationPhase string

const (
	PhaseLogin       RegistrationPhase = "login"
	PhaseRegister    RegistrationPhase = "register"
	PhaseAwaitingOTP RegistrationPhase = "awaiting-otp"
	PhaseSettled     RegistrationPhase = "settled"
)

// RegistrationForm holds the typed credentials. The fields survive phase
// transitions so stepping back from OTP entry loses nothing.
type RegistrationForm struct {
	Username string
	Email    string
	Password string
}
