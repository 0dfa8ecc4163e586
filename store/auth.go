package store

import (
	"cblls_server/lib"
	"cblls_server/storage"
	"cblls_server/structs"
	"context"
	"encoding/json"

	"github.com/MonkyMars/gecho"
)

// CurrentUser returns the persisted session, nil when nobody is logged
// in or the session document is corrupt.
func (s *Store) CurrentUser() *structs.User {
	data, found, err := s.backend.Get(context.Background(), storage.KeySession)
	if err != nil {
		s.logger.Warn("Failed to read session document", gecho.Field("error", err))
		return nil
	}
	if !found {
		return nil
	}

	user := &structs.User{}
	if err := json.Unmarshal(data, user); err != nil {
		s.logger.Warn("Discarding corrupt session document", gecho.Field("error", err))
		return nil
	}
	return user
}

// Login delegates the credential check to the identity provider. On
// success it establishes the session, persists it and notifies auth
// subscribers. Failures come back as a Result with a message; nothing
// is persisted and no subscriber fires.
func (s *Store) Login(ctx context.Context, email, password string) structs.AuthResult {
	user, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Debug("Login rejected",
			gecho.Field("identifier", email),
			gecho.Field("error_detail", lib.GetDetailForLogging(err)),
		)
		return structs.AuthResult{Success: false, Message: lib.GetUserMessage(err)}
	}

	if err := s.persistSession(ctx, user); err != nil {
		s.logger.Error("Failed to persist session after login",
			gecho.Field("error", err),
			gecho.Field("uid", user.Uid),
		)
		return structs.AuthResult{Success: false, Message: lib.GetUserMessage(err)}
	}

	s.authListeners.notify(user)
	return structs.AuthResult{Success: true, User: user}
}

// Register creates a new account and establishes a session identical in
// shape to Login's success path.
func (s *Store) Register(ctx context.Context, name, email, password string) structs.AuthResult {
	user, err := s.provider.SignUp(ctx, name, email, password)
	if err != nil {
		s.logger.Debug("Registration rejected",
			gecho.Field("identifier", email),
			gecho.Field("error_detail", lib.GetDetailForLogging(err)),
		)
		return structs.AuthResult{Success: false, Message: lib.GetUserMessage(err)}
	}

	if err := s.persistSession(ctx, user); err != nil {
		s.logger.Error("Failed to persist session after registration",
			gecho.Field("error", err),
			gecho.Field("uid", user.Uid),
		)
		return structs.AuthResult{Success: false, Message: lib.GetUserMessage(err)}
	}

	s.authListeners.notify(user)
	return structs.AuthResult{Success: true, User: user}
}

// Logout clears the persisted session and notifies auth subscribers
// with an absent session. Always succeeds from the caller's view.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Delete(ctx, storage.KeySession); err != nil {
		s.logger.Warn("Failed to clear session document", gecho.Field("error", err))
	}
	s.authListeners.notify(nil)
}

// RefreshSession re-reads the provider's view of the user to pick up
// out-of-band changes, e.g. a verification flag flipped after the user
// completed an external action. Returns nil when no session exists or
// the refresh fails.
func (s *Store) RefreshSession(ctx context.Context) *structs.User {
	current := s.CurrentUser()
	if current == nil {
		return nil
	}

	fresh, err := s.provider.Lookup(ctx, current.Uid)
	if err != nil || fresh == nil {
		s.logger.Debug("Session refresh failed",
			gecho.Field("uid", current.Uid),
			gecho.Field("error_detail", lib.GetDetailForLogging(err)),
		)
		return nil
	}

	if *fresh != *current {
		if err := s.persistSession(ctx, fresh); err != nil {
			s.logger.Warn("Failed to persist refreshed session",
				gecho.Field("error", err),
				gecho.Field("uid", fresh.Uid),
			)
			return fresh
		}
		s.authListeners.notify(fresh)
	}

	return fresh
}

func (s *Store) persistSession(ctx context.Context, user *structs.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, storage.KeySession, data)
}
