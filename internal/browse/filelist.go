package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/me/csvbrowse/internal/channel"
	"github.com/me/csvbrowse/pkg/model"
)

var (
	// ErrAborted is returned when the user declines a confirmation
	// prompt.
	ErrAborted = errors.New("aborted")
	// ErrNotAdmin is returned when a mutation requires the admin role.
	ErrNotAdmin = errors.New("admin role required")
	// ErrNotCSV is returned when an upload candidate does not carry a
	// .csv extension.
	ErrNotCSV = errors.New("only CSV files are allowed")
	// ErrBusy is returned when an upload is started while another is
	// still in flight.
	ErrBusy = errors.New("upload already in progress")
)

// FileAPI is the slice of the server API the file list needs.
type FileAPI interface {
	ListFiles(ctx context.Context) ([]model.FileSummary, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) (*model.FileSummary, error)
	DeleteFile(ctx context.Context, id int64) error
}

// ConfirmFunc asks the user to approve a destructive action. It
// returns true to proceed.
type ConfirmFunc func(prompt string) bool

// FileList holds the current file listing and the selection state for
// one signed-in session.
type FileList struct {
	api     FileAPI
	admin   bool
	confirm ConfirmFunc
	logger  *slog.Logger

	mu        sync.Mutex
	files     []model.FileSummary
	selected  *model.FileSummary
	uploading bool
}

// NewFileList builds a file list for a session with the given role.
// The confirm hook guards deletions; a nil hook approves everything.
func NewFileList(api FileAPI, admin bool, confirm ConfirmFunc, logger *slog.Logger) *FileList {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &FileList{
		api:     api,
		admin:   admin,
		confirm: confirm,
		logger:  logger.With("component", "filelist"),
	}
}

// Reload refetches the full listing from the server. On failure the
// previous listing is kept.
func (l *FileList) Reload(ctx context.Context) error {
	files, err := l.api.ListFiles(ctx)
	if err != nil {
		l.logger.Error("failed to load files", "error", err)
		return fmt.Errorf("loading file list: %w", err)
	}

	l.mu.Lock()
	l.files = files
	l.mu.Unlock()
	return nil
}

// Files returns a copy of the current listing in server order.
func (l *FileList) Files() []model.FileSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.FileSummary, len(l.files))
	copy(out, l.files)
	return out
}

// HandleMessage reacts to one push message. Only csv_list_updated
// triggers a refetch; everything else is ignored. Reports whether the
// listing was reloaded.
func (l *FileList) HandleMessage(ctx context.Context, msg channel.Message) bool {
	if msg.Type != channel.TypeCSVListUpdated {
		return false
	}
	l.logger.Debug("file list changed on server", "action", msg.Action, "file_id", msg.FileID)
	if err := l.Reload(ctx); err != nil {
		return false
	}
	return true
}

// Upload sends a new CSV to the server and refreshes the listing. The
// extension check runs before any network traffic.
func (l *FileList) Upload(ctx context.Context, filename string, r io.Reader) (*model.FileSummary, error) {
	if !l.admin {
		return nil, ErrNotAdmin
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, ErrNotCSV
	}

	l.mu.Lock()
	if l.uploading {
		l.mu.Unlock()
		return nil, ErrBusy
	}
	l.uploading = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.uploading = false
		l.mu.Unlock()
	}()

	summary, err := l.api.UploadFile(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", filename, err)
	}
	if err := l.Reload(ctx); err != nil {
		l.logger.Warn("refresh after upload failed", "error", err)
	}
	return summary, nil
}

// Delete removes a file after confirmation and refreshes the listing.
// If the deleted file was open, the selection is closed.
func (l *FileList) Delete(ctx context.Context, id int64) error {
	if !l.admin {
		return ErrNotAdmin
	}
	if !l.confirm("Are you sure you want to delete this file?") {
		return ErrAborted
	}

	if err := l.api.DeleteFile(ctx, id); err != nil {
		return fmt.Errorf("deleting file %d: %w", id, err)
	}

	l.mu.Lock()
	if l.selected != nil && l.selected.ID == id {
		l.selected = nil
	}
	l.mu.Unlock()

	if err := l.Reload(ctx); err != nil {
		l.logger.Warn("refresh after delete failed", "error", err)
	}
	return nil
}

// Select marks the file with the given id as open. Returns false when
// the id is not in the current listing.
func (l *FileList) Select(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.files {
		if l.files[i].ID == id {
			f := l.files[i]
			l.selected = &f
			return true
		}
	}
	return false
}

// Selected returns the open file, or nil.
func (l *FileList) Selected() *model.FileSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == nil {
		return nil
	}
	f := *l.selected
	return &f
}

// CloseSelected clears the open file.
func (l *FileList) CloseSelected() {
	l.mu.Lock()
	l.selected = nil
	l.mu.Unlock()
}
