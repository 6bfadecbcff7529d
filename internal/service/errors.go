package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/facade"
	"github.com/alexanderramin/execview/internal/store"
)

var (
	// ErrNoSnapshot is returned by reads of the cached snapshot before any
	// dataset was loaded.
	ErrNoSnapshot = errors.New("no dataset loaded")
	// ErrUnknownSection is returned for export sections that do not exist.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownUser is returned when a login email matches no user.
	ErrUnknownUser = errors.New("unknown user")
	// ErrUnknownFormat is returned for unsupported export formats.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrReloadAfterReset is returned when a reset was stored but the fresh
	// snapshot could not be read back.
	ErrReloadAfterReset = errors.New("dataset regenerated but not reloaded")
)

// UserMessage maps an error to short, non-technical text for display. The
// full error belongs in the logs.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrReloadAfterReset):
		return "Dashboard data was regenerated but could not be loaded. Refresh to see it."
	case errors.Is(err, facade.ErrSimulatedTransientFailure):
		return "The service is temporarily unavailable. Please try again."
	case errors.Is(err, store.ErrStoreUnavailable), errors.Is(err, store.ErrTransactionFailed):
		return "Local data storage is unavailable. Please try again later."
	case errors.Is(err, ErrNoSnapshot):
		return "No dashboard data is loaded yet."
	case errors.Is(err, domain.ErrUnknownGranularity):
		return "Unknown time period. Choose daily, weekly, monthly, quarterly or annually."
	case errors.Is(err, ErrUnknownSection):
		return "Unknown dashboard section."
	case errors.Is(err, ErrUnknownFormat):
		return "Unsupported export format. Choose csv or xlsx."
	case errors.Is(err, ErrUnknownUser):
		return "No account matches that email."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The operation was cancelled."
	default:
		return "Something went wrong. Please try again."
	}
}
