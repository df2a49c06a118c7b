package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/mock"
)

// MockAuthClient implements session.AuthClient
type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) Login(ctx context.Context, req session.LoginRequest) (*session.AuthResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*session.AuthResponse)
	return res, args.Error(1)
}

func (m *MockAuthClient) Register(ctx context.Context, req session.RegisterRequest) (*session.AuthResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*session.AuthResponse)
	return res, args.Error(1)
}

// recordingNavigator captures every redirect the machine issues.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingNavigator) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingNavigator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.paths...)
}

// recordingNotifier captures every notification.
type recordingNotifier struct {
	mu    sync.Mutex
	notes []session.Notification
}

func (r *recordingNotifier) Notify(n session.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recordingNotifier) Notes() []session.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]session.Notification{}, r.notes...)
}

// recordingBearer captures bearer header mutations in order.
type recordingBearer struct {
	mu    sync.Mutex
	token string
	set   bool
	ops   []string
}

func (r *recordingBearer) SetBearer(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	r.set = true
	r.ops = append(r.ops, "set")
}

func (r *recordingBearer) ClearBearer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	r.set = false
	r.ops = append(r.ops, "clear")
}

func (r *recordingBearer) Token() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token, r.set
}

// failingStore wraps a real store and injects failures.
type failingStore struct {
	inner    session.TokenStore
	setErr   error
	clearErr error
}

func (f *failingStore) Set(token string, maxAge time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.inner.Set(token, maxAge)
}

func (f *failingStore) Get() (string, bool) {
	return f.inner.Get()
}

func (f *failingStore) Clear() error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.inner.Clear()
}

// blockingStore parks the first Get until released, to interleave guard passes.
type blockingStore struct {
	inner   session.TokenStore
	gate    chan struct{}
	blocked chan struct{}
	first   atomic.Bool
}

func newBlockingStore(inner session.TokenStore) *blockingStore {
	return &blockingStore{
		inner:   inner,
		gate:    make(chan struct{}),
		blocked: make(chan struct{}),
	}
}

func (b *blockingStore) Set(token string, maxAge time.Duration) error {
	return b.inner.Set(token, maxAge)
}

func (b *blockingStore) Get() (string, bool) {
	if b.first.CompareAndSwap(false, true) {
		close(b.blocked)
		<-b.gate
	}
	return b.inner.Get()
}

func (b *blockingStore) Clear() error {
	return b.inner.Clear()
}

// signedToken builds a well-formed HS256 token carrying the subject claims.
// The signature is irrelevant client-side; decoding is unverified.
func signedToken(name, email string, exp time.Time) string {
	claims := &session.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Name:  name,
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	if err != nil {
		panic(err)
	}
	return signed
}
