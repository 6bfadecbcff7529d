package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/facade"
	"github.com/alexanderramin/execview/internal/store"
	"github.com/google/uuid"
)

type preferenceService struct {
	prefs    *store.Preferences
	remote   *facade.Service
	observer UseCaseObserver
}

func NewPreferenceService(prefs *store.Preferences, remote *facade.Service, observers ...UseCaseObserver) PreferenceService {
	return &preferenceService{prefs: prefs, remote: remote, observer: useCaseObserverOrNoop(observers)}
}

// Theme returns the stored theme, light when none or an unknown value is
// stored.
func (s *preferenceService) Theme(ctx context.Context) (domain.Theme, error) {
	v, found, err := s.prefs.Get(ctx, store.KeyTheme)
	if err != nil {
		return domain.ThemeLight, err
	}
	if !found {
		return domain.ThemeLight, nil
	}
	t, _ := domain.ParseTheme(v)
	return t, nil
}

func (s *preferenceService) SetTheme(ctx context.Context, t domain.Theme) error {
	return s.prefs.Set(ctx, store.KeyTheme, string(t))
}

// Login looks the user up by email and stores a fresh mock session token.
// There is no password check.
func (s *preferenceService) Login(ctx context.Context, email string) (user *domain.User, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "login",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	users, err := facade.FetchAs[domain.User](ctx, s.remote, domain.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			user = &u
			break
		}
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %w", email, ErrUnknownUser)
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encoding user: %w", err)
	}
	if err := s.prefs.Set(ctx, store.KeyAuthToken, uuid.NewString()); err != nil {
		return nil, err
	}
	if err := s.prefs.Set(ctx, store.KeyUser, string(encoded)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *preferenceService) Logout(ctx context.Context) error {
	return s.prefs.Remove(ctx, store.KeyAuthToken, store.KeyUser)
}

// CurrentUser returns the logged-in user. A session needs both the token
// and the stored user.
func (s *preferenceService) CurrentUser(ctx context.Context) (*domain.User, bool, error) {
	if _, found, err := s.prefs.Get(ctx, store.KeyAuthToken); err != nil || !found {
		return nil, false, err
	}
	raw, found, err := s.prefs.Get(ctx, store.KeyUser)
	if err != nil || !found {
		return nil, false, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false, fmt.Errorf("decoding stored user: %w", err)
	}
	return &u, true, nil
}
