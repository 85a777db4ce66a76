package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront-client/internal/apperr"
	"storefront-client/internal/model"

	"gorm.io/gorm"
)

// sessionRowID pins the credential to a single row; there is never more than one.
const sessionRowID = 1

type SessionStore interface {
	// Get returns nil, nil when logged out. Absence is not an error.
	Get(ctx context.Context) (*model.Credential, error)
	Set(ctx context.Context, cred model.Credential) error
	Clear(ctx context.Context) error

	// Subscribe registers a callback invoked with the new auth state after
	// every Set/Clear. Returns a function that removes the subscription.
	Subscribe(fn func(loggedIn bool)) func()
}

type sessionStoreImpl struct {
	db *gorm.DB

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func(bool)
}

func NewSessionStore(db *gorm.DB) SessionStore {
	return &sessionStoreImpl{
		db:          db,
		subscribers: make(map[int]func(bool)),
	}
}

func (s *sessionStoreImpl) Get(ctx context.Context) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row model.Session
	err := s.db.WithContext(ctx).First(&row, sessionRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	// A half-written row would violate the both-or-neither invariant;
	// treat it as logged out rather than hand out a broken credential.
	if row.AccessToken == "" || row.RefreshToken == "" {
		return nil, nil
	}

	return &model.Credential{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
	}, nil
}

func (s *sessionStoreImpl) Set(ctx context.Context, cred model.Credential) error {
	if cred.AccessToken == "" || cred.RefreshToken == "" {
		return apperr.New(apperr.KindValidationFailed, "credential requires both access and refresh tokens")
	}

	s.mu.Lock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(&model.Session{
			ID:           sessionRowID,
			AccessToken:  cred.AccessToken,
			RefreshToken: cred.RefreshToken,
		}).Error
	})
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.notify(true)
	return nil
}

func (s *sessionStoreImpl) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.db.WithContext(ctx).Delete(&model.Session{}, sessionRowID).Error
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.notify(false)
	return nil
}

func (s *sessionStoreImpl) Subscribe(fn func(loggedIn bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *sessionStoreImpl) notify(loggedIn bool) {
	s.mu.Lock()
	fns := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(loggedIn)
	}
}
