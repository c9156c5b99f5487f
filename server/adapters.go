package server

import (
	"context"

	"github.com/umputun/shelfscope/pkg/session"
)

// SessionsAdapter adapts session.Manager to server.Sessions interface
type SessionsAdapter struct {
	*session.Manager
}

// Create adapts session.Manager.Create to return the session id with the session
func (a *SessionsAdapter) Create(ctx context.Context, token, userID string) (string, Session, error) {
	s, err := a.Manager.Create(ctx, token, userID)
	if err != nil {
		return "", nil, err
	}
	return s.ID, s, nil
}

// Get adapts session.Manager.Get to return the Session interface
func (a *SessionsAdapter) Get(id, token string) (Session, error) {
	s, err := a.Manager.Get(id, token)
	if err != nil {
		return nil, err // avoid typed nil in the interface
	}
	return s, nil
}
