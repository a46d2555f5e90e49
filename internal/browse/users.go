package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/csvbrowse/pkg/model"
)

// ErrProtected is returned when a delete targets an admin account.
var ErrProtected = errors.New("admin accounts cannot be deleted")

// UserAPI is the slice of the server API user management needs.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserList holds the account listing for an admin session.
type UserList struct {
	api     UserAPI
	confirm ConfirmFunc
	logger  *slog.Logger

	mu    sync.Mutex
	users []model.User
}

// NewUserList builds a user list. The confirm hook guards deletions; a
// nil hook approves everything.
func NewUserList(api UserAPI, confirm ConfirmFunc, logger *slog.Logger) *UserList {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &UserList{
		api:     api,
		confirm: confirm,
		logger:  logger.With("component", "userlist"),
	}
}

// Reload refetches the account listing. On failure the previous
// listing is kept.
func (l *UserList) Reload(ctx context.Context) error {
	users, err := l.api.ListUsers(ctx)
	if err != nil {
		l.logger.Error("failed to load users", "error", err)
		return fmt.Errorf("loading user list: %w", err)
	}

	l.mu.Lock()
	l.users = users
	l.mu.Unlock()
	return nil
}

// Users returns a copy of the current listing in server order.
func (l *UserList) Users() []model.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.User, len(l.users))
	copy(out, l.users)
	return out
}

// Delete removes an account after confirmation and refreshes the
// listing. Admin accounts are refused before any request is sent.
func (l *UserList) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	for i := range l.users {
		if l.users[i].ID == id && l.users[i].IsAdmin() {
			l.mu.Unlock()
			return ErrProtected
		}
	}
	l.mu.Unlock()

	if !l.confirm("Are you sure you want to delete this user?") {
		return ErrAborted
	}

	if err := l.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	if err := l.Reload(ctx); err != nil {
		l.logger.Warn("refresh after delete failed", "error", err)
	}
	return nil
}
