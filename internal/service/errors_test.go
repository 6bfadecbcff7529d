package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/facade"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/alexanderramin/execview/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"transient", fmt.Errorf("updating: %w", facade.ErrSimulatedTransientFailure), "temporarily unavailable"},
		{"store", fmt.Errorf("%w: disk", store.ErrTransactionFailed), "storage is unavailable"},
		{"closed store", store.ErrStoreUnavailable, "storage is unavailable"},
		{"no snapshot", service.ErrNoSnapshot, "No dashboard data"},
		{"granularity", domain.ErrUnknownGranularity, "Unknown time period"},
		{"section", service.ErrUnknownSection, "Unknown dashboard section"},
		{"format", service.ErrUnknownFormat, "Unsupported export format"},
		{"user", service.ErrUnknownUser, "No account"},
		{"cancelled", context.Canceled, "cancelled"},
		{"other", errors.New("sql: no such table"), "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.UserMessage(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
			assert.NotContains(t, got, "sql")
		})
	}
}
