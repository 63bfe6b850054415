//go:build unit

package httperr

import (
	"net/http"
	"testing"

	"hotel-booking-core/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.Mark(errs.New("booking not found"), errs.ErrNotFound), http.StatusNotFound},
		{"forbidden", errs.Mark(errs.New("not the hotel admin"), errs.ErrForbidden), http.StatusForbidden},
		{"conflict", errs.Mark(errs.New("stale status"), errs.ErrInvalidStateTransition), http.StatusConflict},
		{"validation", errs.Mark(errs.New("bad dates"), errs.ErrValidation), http.StatusUnprocessableEntity},
		{"unavailable", errs.Mark(errs.New("timeout"), errs.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"wrapped keeps mark", errs.Wrap(errs.Mark(errs.New("x"), errs.ErrForbidden), "ctx"), http.StatusForbidden},
		{"unclassified", errs.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
