package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shopfront/internal/adapter/memory"
	"shopfront/internal/app"
	"shopfront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, opts ...app.SessionOption) (*app.SessionStore, *memory.Directory, *manualScheduler) {
	t.Helper()
	dir := memory.NewSeeded()
	sched := &manualScheduler{}
	opts = append([]app.SessionOption{app.WithScheduler(sched)}, opts...)
	return app.NewSessionStore(dir, opts...), dir, sched
}

func signedIn(t *testing.T, opts ...app.SessionOption) (*app.SessionStore, *memory.Directory, *manualScheduler) {
	t.Helper()
	s, dir, sched := newSession(t, opts...)
	s.SignIn("demo@example.com", "password123")
	sched.RunAll()
	require.True(t, s.State().IsAuthenticated)
	return s, dir, sched
}

func TestSignIn_ValidCredentials(t *testing.T) {
	s, _, sched := newSession(t)

	s.SignIn("demo@example.com", "password123")

	st := s.State()
	assert.True(t, st.IsLoading, "loading while the call is pending")
	assert.False(t, st.IsAuthenticated)
	assert.Empty(t, st.ErrorMessage)
	require.Equal(t, 1, sched.Len())
	assert.Equal(t, app.DefaultAuthDelay, sched.delays[0])

	sched.RunAll()

	st = s.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.ErrorMessage)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "1", st.CurrentUser.ID)
	assert.Equal(t, "Demo User", st.CurrentUser.Name)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name, email, password string
	}{
		{"wrong email", "wrong@example.com", "password123"},
		{"wrong password", "demo@example.com", "wrongpassword"},
		{"email case differs", "Demo@Example.com", "password123"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, sched := newSession(t)
			s.SignIn(tc.email, tc.password)
			sched.RunAll()

			st := s.State()
			assert.False(t, st.IsAuthenticated)
			assert.Nil(t, st.CurrentUser)
			assert.False(t, st.IsLoading)
			assert.Equal(t, app.MsgInvalidCredentials, st.ErrorMessage)
		})
	}
}

func TestSignIn_ClearsPreviousError(t *testing.T) {
	s, _, sched := newSession(t)
	s.SignIn("demo@example.com", "nope")
	sched.RunAll()
	require.NotEmpty(t, s.State().ErrorMessage)

	s.SignIn("demo@example.com", "password123")
	assert.Empty(t, s.State().ErrorMessage)
	sched.RunAll()
	assert.Empty(t, s.State().ErrorMessage)
	assert.True(t, s.State().IsAuthenticated)
}

func TestSignUp_ExistingEmailFailsImmediately(t *testing.T) {
	s, dir, sched := newSession(t)

	s.SignUp("demo@example.com", "password123", "Someone Else")

	st := s.State()
	assert.Equal(t, app.MsgUserExists, st.ErrorMessage)
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
	assert.Zero(t, sched.Len(), "no simulated delay for a taken email")

	n, _ := dir.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestSignUp_NewUser(t *testing.T) {
	s, dir, sched := newSession(t, app.WithIDGenerator(func() string { return "u-42" }))

	s.SignUp("new@example.com", "secret1", "New User")

	st := s.State()
	assert.True(t, st.IsLoading)
	assert.Empty(t, st.ErrorMessage)
	n, _ := dir.Count(context.Background())
	assert.Equal(t, 1, n, "directory unchanged until the delay elapses")

	sched.RunAll()

	st = s.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "u-42", st.CurrentUser.ID)
	assert.Equal(t, "new@example.com", st.CurrentUser.Email)
	assert.Equal(t, "New User", st.CurrentUser.Name)
	assert.Nil(t, st.CurrentUser.Phone)
	assert.Nil(t, st.CurrentUser.Address)

	n, _ = dir.Count(context.Background())
	assert.Equal(t, 2, n)

	u, _ := dir.GetByCredentials(context.Background(), "new@example.com", "secret1")
	require.NotNil(t, u)
	assert.Equal(t, "u-42", u.ID)
}

func TestSignUp_DefaultIDsAreUnique(t *testing.T) {
	s, dir, sched := newSession(t)
	s.SignUp("a@example.com", "secret1", "A")
	sched.RunAll()
	first := s.State().CurrentUser.ID
	s.SignUp("b@example.com", "secret1", "B")
	sched.RunAll()
	second := s.State().CurrentUser.ID

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	n, _ := dir.Count(context.Background())
	assert.Equal(t, 3, n)
}

func TestSignUp_RaceOnSameEmail(t *testing.T) {
	s, dir, sched := newSession(t)
	s.SignUp("race@example.com", "secret1", "First")
	s.SignUp("race@example.com", "secret2", "Second")
	require.Equal(t, 2, sched.Len(), "both pass the synchronous check")

	sched.RunNext()
	assert.Equal(t, "First", s.State().CurrentUser.Name)
	sched.RunNext()

	st := s.State()
	assert.Equal(t, app.MsgUserExists, st.ErrorMessage)
	assert.Equal(t, "First", st.CurrentUser.Name)
	n, _ := dir.Count(context.Background())
	assert.Equal(t, 2, n)
}

func TestSignOut(t *testing.T) {
	s, _, _ := signedIn(t)

	s.SignOut()

	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.CurrentUser)
}

func TestSignOut_LeavesLoadingAndError(t *testing.T) {
	s, _, sched := newSession(t)
	s.SignIn("demo@example.com", "bad")
	sched.RunAll()
	s.SignIn("demo@example.com", "bad")

	s.SignOut()

	st := s.State()
	assert.True(t, st.IsLoading)
	assert.Empty(t, st.ErrorMessage)

	sched.RunAll()
	s.SignOut()
	assert.Equal(t, app.MsgInvalidCredentials, s.State().ErrorMessage)
}

func TestPendingSignInCompletesAfterSignOut(t *testing.T) {
	s, _, sched := newSession(t)
	s.SignIn("demo@example.com", "password123")
	s.SignOut()
	sched.RunAll()

	st := s.State()
	assert.True(t, st.IsAuthenticated, "pending sign-in is not cancelled by default")
	assert.NotNil(t, st.CurrentUser)
}

func TestPendingSignInDroppedWhenInvalidating(t *testing.T) {
	s, _, sched := newSession(t, app.WithInvalidatePendingOnSignOut(true))
	s.SignIn("demo@example.com", "password123")
	s.SignOut()
	sched.RunAll()

	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.CurrentUser)
	assert.False(t, st.IsLoading)
}

func TestPendingSignUpDroppedWhenInvalidating(t *testing.T) {
	s, dir, sched := newSession(t, app.WithInvalidatePendingOnSignOut(true))
	s.SignUp("late@example.com", "secret1", "Late")
	s.SignOut()
	sched.RunAll()

	assert.False(t, s.State().IsAuthenticated)
	n, _ := dir.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestStaleCompletionKeepsNewerLoading(t *testing.T) {
	s, _, sched := newSession(t, app.WithInvalidatePendingOnSignOut(true))
	s.SignIn("demo@example.com", "password123")
	s.SignOut()
	s.SignIn("demo@example.com", "password123")

	sched.RunNext()
	st := s.State()
	assert.True(t, st.IsLoading, "second sign-in still pending")
	assert.False(t, st.IsAuthenticated)

	sched.RunNext()
	st = s.State()
	assert.False(t, st.IsLoading)
	assert.True(t, st.IsAuthenticated)
}

func TestUpdateUser(t *testing.T) {
	s, dir, _ := signedIn(t)

	updated := memory.DemoUser()
	updated.Name = "Updated Name"
	updated.Email = "updated@example.com"
	s.UpdateUser(updated)

	st := s.State()
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "Updated Name", st.CurrentUser.Name)
	assert.Equal(t, "updated@example.com", st.CurrentUser.Email)

	u, _ := dir.GetByID(context.Background(), "1")
	assert.Equal(t, "Updated Name", u.Name)
	n, _ := dir.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestUpdateUser_UnknownIDIsNoop(t *testing.T) {
	s, dir, _ := signedIn(t)

	s.UpdateUser(domain.User{ID: "missing", Name: "Ghost"})

	assert.Equal(t, "Demo User", s.State().CurrentUser.Name)
	n, _ := dir.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestUpdateUser_SignedOutOnlyTouchesDirectory(t *testing.T) {
	s, dir, _ := newSession(t)

	updated := memory.DemoUser()
	updated.Name = "Offline Edit"
	s.UpdateUser(updated)

	assert.Nil(t, s.State().CurrentUser)
	u, _ := dir.GetByID(context.Background(), "1")
	assert.Equal(t, "Offline Edit", u.Name)
}

func TestSaveProfile(t *testing.T) {
	s, dir, sched := signedIn(t)

	err := s.SaveProfile(app.ProfileInput{
		Name:    "  Jane Doe ",
		Email:   " jane@example.com ",
		Phone:   "   ",
		Address: " 1 Infinite Loop ",
	})
	require.NoError(t, err)
	assert.True(t, s.State().IsLoading)
	require.Equal(t, 1, sched.Len())
	assert.Equal(t, app.DefaultProfileDelay, sched.delays[len(sched.delays)-1])

	sched.RunAll()

	st := s.State()
	assert.False(t, st.IsLoading)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "1", st.CurrentUser.ID)
	assert.Equal(t, "Jane Doe", st.CurrentUser.Name)
	assert.Equal(t, "jane@example.com", st.CurrentUser.Email)
	assert.Nil(t, st.CurrentUser.Phone)
	require.NotNil(t, st.CurrentUser.Address)
	assert.Equal(t, "1 Infinite Loop", *st.CurrentUser.Address)

	u, _ := dir.GetByCredentials(context.Background(), "jane@example.com", "password123")
	require.NotNil(t, u, "password is kept")
	assert.Equal(t, "1", u.ID)
}

func TestSaveProfile_Validation(t *testing.T) {
	s, _, sched := signedIn(t)

	tests := []struct {
		name string
		in   app.ProfileInput
	}{
		{"blank name", app.ProfileInput{Name: "  ", Email: "a@b.c"}},
		{"blank email", app.ProfileInput{Name: "A", Email: " "}},
		{"email without at", app.ProfileInput{Name: "A", Email: "example.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.SaveProfile(tc.in)
			require.ErrorIs(t, err, app.ErrInvalidProfile)
			assert.False(t, s.State().IsLoading)
			assert.Zero(t, sched.Len())
		})
	}
}

func TestSaveProfile_RequiresSignIn(t *testing.T) {
	s, _, _ := newSession(t)
	err := s.SaveProfile(app.ProfileInput{Name: "A", Email: "a@example.com"})
	require.ErrorIs(t, err, app.ErrNotAuthenticated)
}

func TestSaveProfile_SignedOutBeforeCompletion(t *testing.T) {
	s, dir, sched := signedIn(t)
	require.NoError(t, s.SaveProfile(app.ProfileInput{Name: "Late", Email: "late@example.com"}))
	s.SignOut()
	sched.RunAll()

	assert.False(t, s.State().IsLoading)
	assert.Nil(t, s.State().CurrentUser)
	u, _ := dir.GetByID(context.Background(), "1")
	assert.Equal(t, "Demo User", u.Name)
}

func TestSessionSubscribe(t *testing.T) {
	s, _, sched := newSession(t)

	var seen []app.SessionState
	unsubscribe := s.Subscribe(func(st app.SessionState) { seen = append(seen, st) })

	s.SignIn("demo@example.com", "password123")
	sched.RunAll()
	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsLoading)
	assert.True(t, seen[1].IsAuthenticated)

	unsubscribe()
	unsubscribe()
	s.SignOut()
	assert.Len(t, seen, 2)
}

// goScheduler runs every deferred completion on its own goroutine.
type goScheduler struct{}

func (goScheduler) AfterFunc(_ time.Duration, f func()) { go f() }

func TestSessionObserversSeeStatesInOrder(t *testing.T) {
	s := app.NewSessionStore(memory.NewSeeded(), app.WithScheduler(goScheduler{}))

	blocked := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	s.Subscribe(func(st app.SessionState) {
		if st.IsAuthenticated {
			once.Do(func() {
				close(blocked)
				<-release
			})
		}
	})

	var mu sync.Mutex
	var seen []app.SessionState
	s.Subscribe(func(st app.SessionState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, st)
	})

	s.SignIn("demo@example.com", "password123")
	select {
	case <-blocked:
	case <-time.After(time.Second):
		t.Fatal("sign-in completion was never delivered")
	}

	// The sign-out lands while the authenticated state is still being
	// delivered.
	s.SignOut()
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, seen[0].IsLoading)
	assert.True(t, seen[1].IsAuthenticated)
	assert.False(t, seen[2].IsAuthenticated)
	assert.Equal(t, s.State().IsAuthenticated, seen[len(seen)-1].IsAuthenticated)
}

func TestSessionStateIsSnapshot(t *testing.T) {
	s, _, _ := signedIn(t)
	st := s.State()
	st.CurrentUser.Name = "tampered"
	assert.Equal(t, "Demo User", s.State().CurrentUser.Name)
}

type failingDirectory struct {
	domain.UserDirectory
	err error
}

func (f failingDirectory) GetByCredentials(context.Context, string, string) (*domain.User, error) {
	return nil, f.err
}

func (f failingDirectory) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

func TestDirectoryErrorsSurfaceAsMessage(t *testing.T) {
	sched := &manualScheduler{}
	s := app.NewSessionStore(failingDirectory{err: errors.New("directory offline")}, app.WithScheduler(sched))

	s.SignIn("demo@example.com", "password123")
	sched.RunAll()
	assert.Equal(t, "directory offline", s.State().ErrorMessage)
	assert.False(t, s.State().IsAuthenticated)

	s.SignUp("x@example.com", "secret1", "X")
	assert.Equal(t, "directory offline", s.State().ErrorMessage)
	assert.False(t, s.State().IsLoading)
}

func TestSignIn_RealTimer(t *testing.T) {
	s := app.NewSessionStore(memory.NewSeeded(), app.WithDelays(10*time.Millisecond, 10*time.Millisecond))

	s.SignIn("demo@example.com", "password123")
	assert.True(t, s.State().IsLoading)

	require.Eventually(t, func() bool { return s.State().IsAuthenticated }, time.Second, 5*time.Millisecond)
	assert.False(t, s.State().IsLoading)
}
