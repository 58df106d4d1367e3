package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thumlify/thumlify-cli/internal/domain"
)

var errStubNotWired = errors.New("stub call not wired")

// apiErrStub mimics a transport error that reached the server and carries
// its reason back.
type apiErrStub struct {
	msg string
}

func (e *apiErrStub) Error() string         { return e.msg }
func (e *apiErrStub) ServerMessage() string { return e.msg }

type authStub struct {
	mu sync.Mutex

	currentUserFn func(context.Context) (domain.UserIdentity, error)
	loginFn       func(context.Context, string, string) (domain.UserIdentity, string, error)
	logoutFn      func(context.Context) error
	requestOTPFn  func(context.Context, domain.RegistrationForm) (int, error)
	verifyOTPFn   func(context.Context, domain.RegistrationForm, string) (domain.UserIdentity, error)
	resendOTPFn   func(context.Context, string) (int, error)

	currentUserCalls int
	resendCalls      int
}

func (s *authStub) CurrentUser(ctx context.Context) (domain.UserIdentity, error) {
	s.mu.Lock()
	s.currentUserCalls++
	s.mu.Unlock()
	if s.currentUserFn == nil {
		return domain.UserIdentity{}, errStubNotWired
	}
	return s.currentUserFn(ctx)
}

func (s *authStub) Login(ctx context.Context, userID, password string) (domain.UserIdentity, string, error) {
	if s.loginFn == nil {
		return domain.UserIdentity{}, "", errStubNotWired
	}
	return s.loginFn(ctx, userID, password)
}

func (s *authStub) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *authStub) RequestRegistrationOTP(ctx context.Context, form domain.RegistrationForm) (int, error) {
	if s.requestOTPFn == nil {
		return 0, errStubNotWired
	}
	return s.requestOTPFn(ctx, form)
}

func (s *authStub) VerifyRegistrationOTP(ctx context.Context, form domain.RegistrationForm, otp string) (domain.UserIdentity, error) {
	if s.verifyOTPFn == nil {
		return domain.UserIdentity{}, errStubNotWired
	}
	return s.verifyOTPFn(ctx, form, otp)
}

func (s *authStub) ResendRegistrationOTP(ctx context.Context, email string) (int, error) {
	s.mu.Lock()
	s.resendCalls++
	s.mu.Unlock()
	if s.resendOTPFn == nil {
		return 0, errStubNotWired
	}
	return s.resendOTPFn(ctx, email)
}

func (s *authStub) callCounts() (currentUser, resend int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUserCalls, s.resendCalls
}

type creditsStub struct {
	mu sync.Mutex

	fetchFn  func(context.Context) (domain.CreditBalance, error)
	deductFn func(context.Context, int) error

	fetchCalls int
	deductions []int
}

func (s *creditsStub) FetchBalance(ctx context.Context) (domain.CreditBalance, error) {
	s.mu.Lock()
	s.fetchCalls++
	s.mu.Unlock()
	if s.fetchFn == nil {
		return domain.CreditBalance{}, errStubNotWired
	}
	return s.fetchFn(ctx)
}

func (s *creditsStub) Deduct(ctx context.Context, amount int) error {
	s.mu.Lock()
	s.deductions = append(s.deductions, amount)
	s.mu.Unlock()
	if s.deductFn == nil {
		return nil
	}
	return s.deductFn(ctx, amount)
}

func (s *creditsStub) deducted() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.deductions))
	copy(out, s.deductions)
	return out
}

type thumbsStub struct {
	generateFn func(context.Context, domain.GenerationSpec) (domain.Thumbnail, error)
	getFn      func(context.Context, domain.ThumbnailID) (domain.Thumbnail, error)
	optimizeFn func(context.Context, string, string, string) (string, error)
	listFn     func(context.Context) ([]domain.Thumbnail, error)
}

func (s *thumbsStub) Generate(ctx context.Context, spec domain.GenerationSpec) (domain.Thumbnail, error) {
	if s.generateFn == nil {
		return domain.Thumbnail{}, errStubNotWired
	}
	return s.generateFn(ctx, spec)
}

func (s *thumbsStub) GetByID(ctx context.Context, id domain.ThumbnailID) (domain.Thumbnail, error) {
	if s.getFn == nil {
		return domain.Thumbnail{}, errStubNotWired
	}
	return s.getFn(ctx, id)
}

func (s *thumbsStub) OptimizePrompt(ctx context.Context, title, description, style string) (string, error) {
	if s.optimizeFn == nil {
		return "", errStubNotWired
	}
	return s.optimizeFn(ctx, title, description, style)
}

func (s *thumbsStub) ListMine(ctx context.Context) ([]domain.Thumbnail, error) {
	if s.listFn == nil {
		return nil, errStubNotWired
	}
	return s.listFn(ctx)
}

type communityStub struct {
	getListingFn func(context.Context, domain.ListingID) (domain.CommunityListing, error)
}

func (s *communityStub) GetListing(ctx context.Context, id domain.ListingID) (domain.CommunityListing, error) {
	if s.getListingFn == nil {
		return domain.CommunityListing{}, errStubNotWired
	}
	return s.getListingFn(ctx, id)
}

type fetcherStub struct {
	fetchFn func(context.Context, string) ([]byte, error)
}

func (s *fetcherStub) Fetch(ctx context.Context, url string) ([]byte, error) {
	if s.fetchFn == nil {
		return nil, errStubNotWired
	}
	return s.fetchFn(ctx, url)
}

type sinkStub struct {
	mu    sync.Mutex
	fail  error
	names []string
	datas [][]byte
}

func (s *sinkStub) Save(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	s.names = append(s.names, name)
	s.datas = append(s.datas, data)
	return "/tmp/" + name, nil
}

func (s *sinkStub) saved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// notifierRecorder captures toasts in arrival order.
type notifierRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *notifierRecorder) Success(msg string) { r.record("success: " + msg) }
func (r *notifierRecorder) Error(msg string)   { r.record("error: " + msg) }
func (r *notifierRecorder) Warning(msg string) { r.record("warning: " + msg) }

func (r *notifierRecorder) record(entry string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, entry)
}

func (r *notifierRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

type navRecorder struct {
	mu      sync.Mutex
	pricing int
	results []domain.ThumbnailID
}

func (r *navRecorder) GoToPricing() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pricing++
}

func (r *navRecorder) GoToResult(id domain.ThumbnailID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, id)
}

func (r *navRecorder) pricingVisits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pricing
}

func (r *navRecorder) resultVisits() []domain.ThumbnailID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ThumbnailID, len(r.results))
	copy(out, r.results)
	return out
}

// stubClock is a hand-advanced clock for cooldown tests.
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock() *stubClock {
	return &stubClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
