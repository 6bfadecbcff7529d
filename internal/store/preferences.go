package store

import (
	"context"
	"errors"

	"github.com/alexanderramin/execview/internal/repository"
)

// Preference keys for session and display state.
const (
	KeyAuthToken = "execview_auth_token"
	KeyUser      = "execview_user"
	KeyTheme     = "execview_theme"
)

// Preferences is the scalar key/value store living next to the collections.
type Preferences struct {
	s *Store
}

// Preferences returns the scalar preference store.
func (s *Store) Preferences() *Preferences {
	return &Preferences{s: s}
}

// Get returns the value stored under key.
func (p *Preferences) Get(ctx context.Context, key string) (string, bool, error) {
	conn, _, err := p.s.conn()
	if err != nil {
		return "", false, err
	}
	v, err := p.s.repos.Preferences(conn).Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, p.s.failed("get preference", "preferences", err)
	}
	return v, true, nil
}

func (p *Preferences) Set(ctx context.Context, key, value string) error {
	conn, _, err := p.s.conn()
	if err != nil {
		return err
	}
	if err := p.s.repos.Preferences(conn).Set(ctx, key, value); err != nil {
		return p.s.failed("set preference", "preferences", err)
	}
	return nil
}

// Remove deletes the given keys. Absent keys are ignored.
func (p *Preferences) Remove(ctx context.Context, keys ...string) error {
	conn, _, err := p.s.conn()
	if err != nil {
		return err
	}
	repo := p.s.repos.Preferences(conn)
	for _, key := range keys {
		if err := repo.Delete(ctx, key); err != nil {
			return p.s.failed("remove preference", "preferences", err)
		}
	}
	return nil
}

func (p *Preferences) Clear(ctx context.Context) error {
	conn, _, err := p.s.conn()
	if err != nil {
		return err
	}
	if err := p.s.repos.Preferences(conn).Clear(ctx); err != nil {
		return p.s.failed("clear preferences", "preferences", err)
	}
	return nil
}
