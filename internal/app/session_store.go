// Package app holds the application state stores and their composition.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"shopfront/internal/domain"

	"github.com/google/uuid"
)

// Messages reported through SessionState.ErrorMessage.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User with this email already exists"
)

// Default simulated latencies.
const (
	DefaultAuthDelay    = time.Second
	DefaultProfileDelay = 1500 * time.Millisecond
)

var (
	// ErrNotAuthenticated indicates an operation that needs a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidProfile indicates a profile form that failed validation.
	ErrInvalidProfile = errors.New("invalid profile")
)

// SessionState is a snapshot of the authentication state.
// CurrentUser is non-nil iff IsAuthenticated.
type SessionState struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	CurrentUser     *domain.User `json:"currentUser"`
	IsLoading       bool         `json:"isLoading"`
	ErrorMessage    string       `json:"errorMessage"`
}

func (st SessionState) clone() SessionState {
	if st.CurrentUser != nil {
		u := st.CurrentUser.Clone()
		st.CurrentUser = &u
	}
	return st
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithScheduler replaces the timer used for simulated latency.
func WithScheduler(s Scheduler) SessionOption {
	return func(ss *SessionStore) { ss.sched = s }
}

// WithDelays sets the simulated auth and profile-save latencies.
func WithDelays(auth, profile time.Duration) SessionOption {
	return func(ss *SessionStore) {
		ss.authDelay = auth
		ss.profileDelay = profile
	}
}

// WithLogger sets the logger for auth outcomes.
func WithLogger(l *slog.Logger) SessionOption {
	return func(ss *SessionStore) { ss.log = l }
}

// WithInvalidatePendingOnSignOut makes SignOut discard the result of any
// sign-in, sign-up or profile save still waiting on its delay. Without it a
// sign-in that completes after SignOut authenticates the session again.
func WithInvalidatePendingOnSignOut(on bool) SessionOption {
	return func(ss *SessionStore) { ss.invalidatePending = on }
}

// WithIDGenerator replaces the user id generator used by SignUp.
func WithIDGenerator(gen func() string) SessionOption {
	return func(ss *SessionStore) { ss.newID = gen }
}

// SessionStore holds the single process-wide authentication session and
// performs the mock sign-in, sign-up, sign-out and profile flows.
type SessionStore struct {
	users             domain.UserDirectory
	sched             Scheduler
	log               *slog.Logger
	authDelay         time.Duration
	profileDelay      time.Duration
	invalidatePending bool
	newID             func() string

	mu    sync.Mutex
	state SessionState
	// generation is bumped by SignOut; lastOp by every deferred operation.
	generation uint64
	lastOp     uint64
	obs        observers[SessionState]
}

// NewSessionStore creates an unauthenticated session over users.
func NewSessionStore(users domain.UserDirectory, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		users:        users,
		sched:        TimerScheduler{},
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		authDelay:    DefaultAuthDelay,
		profileDelay: DefaultProfileDelay,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the session.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive the new state after every change.
func (s *SessionStore) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	return s.obs.subscribe(fn)
}

// pending identifies a deferred operation started by begin.
type pending struct {
	generation uint64
	op         uint64
}

// begin marks the session as loading and returns a handle for the deferred
// completion. Caller holds s.mu.
func (s *SessionStore) begin() pending {
	s.lastOp++
	s.state.IsLoading = true
	s.state.ErrorMessage = ""
	return pending{generation: s.generation, op: s.lastOp}
}

// stale reports whether p was overtaken by a SignOut and must be dropped.
// A stale operation still clears IsLoading when nothing newer is in flight.
// Caller holds s.mu.
func (s *SessionStore) stale(p pending) bool {
	if !s.invalidatePending || p.generation == s.generation {
		return false
	}
	if p.op == s.lastOp {
		s.state.IsLoading = false
	}
	return true
}

// commit queues the new state for observers, releases the lock and delivers
// it.
func (s *SessionStore) commit() {
	s.obs.enqueue(s.state.clone())
	s.mu.Unlock()
	s.obs.flush()
}

// SignIn starts a simulated sign-in. The outcome lands after the auth delay:
// the first directory user matching both email and password exactly becomes
// the current user, otherwise ErrorMessage is set.
func (s *SessionStore) SignIn(email, password string) {
	s.mu.Lock()
	p := s.begin()
	s.commit()

	s.sched.AfterFunc(s.authDelay, func() {
		s.mu.Lock()
		defer s.commit()
		if s.stale(p) {
			s.log.Debug("sign-in dropped after sign-out", "email", email)
			return
		}

		user, err := s.users.GetByCredentials(context.Background(), email, password)
		s.state.IsLoading = false
		switch {
		case err != nil:
			s.log.Error("sign-in lookup failed", "email", email, "err", err)
			s.state.ErrorMessage = err.Error()
		case user == nil:
			s.log.Info("sign-in rejected", "email", email)
			s.state.ErrorMessage = MsgInvalidCredentials
		default:
			s.log.Info("signed in", "user_id", user.ID)
			s.state.CurrentUser = user
			s.state.IsAuthenticated = true
		}
	})
}

// SignUp registers a new account. A taken email fails immediately without a
// delay; otherwise the account is created and signed in after the auth delay.
func (s *SessionStore) SignUp(email, password, name string) {
	s.mu.Lock()
	existing, err := s.users.GetByEmail(context.Background(), email)
	if err != nil || existing != nil {
		s.state.IsLoading = false
		if err != nil {
			s.log.Error("sign-up lookup failed", "email", email, "err", err)
			s.state.ErrorMessage = err.Error()
		} else {
			s.log.Info("sign-up rejected: email taken", "email", email)
			s.state.ErrorMessage = MsgUserExists
		}
		s.commit()
		return
	}
	p := s.begin()
	s.commit()

	s.sched.AfterFunc(s.authDelay, func() {
		s.mu.Lock()
		defer s.commit()
		if s.stale(p) {
			s.log.Debug("sign-up dropped after sign-out", "email", email)
			return
		}

		user, err := s.users.Create(context.Background(), domain.User{
			ID:       s.newID(),
			Email:    email,
			Password: password,
			Name:     name,
		})
		s.state.IsLoading = false
		if err != nil {
			s.log.Error("sign-up failed", "email", email, "err", err)
			s.state.ErrorMessage = signUpMessage(err)
			return
		}
		s.log.Info("signed up", "user_id", user.ID)
		s.state.CurrentUser = user
		s.state.IsAuthenticated = true
	})
}

// signUpMessage maps a directory create failure to the message shown to the
// user. A second sign-up racing for the same email gets the same message as
// the synchronous check.
func signUpMessage(err error) string {
	if errors.Is(err, domain.ErrEmailTaken) {
		return MsgUserExists
	}
	return err.Error()
}

// SignOut clears the authenticated user. IsLoading and ErrorMessage are left
// as they are.
func (s *SessionStore) SignOut() {
	s.mu.Lock()
	s.generation++
	s.state.IsAuthenticated = false
	s.state.CurrentUser = nil
	s.commit()
}

// UpdateUser replaces the directory entry with the same id and makes it the
// current user. Unknown ids are ignored. While signed out only the directory
// entry changes, so CurrentUser stays nil.
func (s *SessionStore) UpdateUser(u domain.User) {
	s.mu.Lock()
	s.updateUserLocked(u)
	s.commit()
}

func (s *SessionStore) updateUserLocked(u domain.User) {
	found, err := s.users.Replace(context.Background(), u)
	if err != nil {
		s.log.Error("update user failed", "user_id", u.ID, "err", err)
		s.state.ErrorMessage = err.Error()
		return
	}
	if !found {
		return
	}
	if s.state.IsAuthenticated {
		c := u.Clone()
		s.state.CurrentUser = &c
	}
}

// ProfileInput is the edit-profile form.
type ProfileInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Validate requires a non-blank name and an email containing "@".
func (in ProfileInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	switch {
	case name == "":
		return wrapInvalid(ErrInvalidProfile, "name is required")
	case email == "":
		return wrapInvalid(ErrInvalidProfile, "email is required")
	case !strings.Contains(email, "@"):
		return wrapInvalid(ErrInvalidProfile, "email must contain @")
	}
	return nil
}

// apply builds the updated user from base, keeping its id and password.
// Blank phone or address clears the field.
func (in ProfileInput) apply(base domain.User) domain.User {
	u := base.Clone()
	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.TrimSpace(in.Email)
	u.Phone = optional(in.Phone)
	u.Address = optional(in.Address)
	return u
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SaveProfile validates in and, after the profile delay, writes it over the
// current user through UpdateUser. If the user signed out in the meantime
// nothing is written.
func (s *SessionStore) SaveProfile(in ProfileInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.state.IsAuthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	p := s.begin()
	s.commit()

	s.sched.AfterFunc(s.profileDelay, func() {
		s.mu.Lock()
		defer s.commit()
		if s.stale(p) {
			return
		}
		s.state.IsLoading = false
		if s.state.CurrentUser == nil {
			return
		}
		s.updateUserLocked(in.apply(*s.state.CurrentUser))
		s.log.Info("profile saved", "user_id", s.state.CurrentUser.ID)
	})
	return nil
}
