package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamerooms/internal/model"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"room not found", fmt.Errorf("lookup: %w", model.ErrRoomNotFound), http.StatusNotFound, CodeRoomNotFound},
		{"unknown game type", fmt.Errorf("%w: %q", model.ErrUnknownGameType, "chess"), http.StatusBadRequest, CodeUnknownGameType},
		{"invalid request", fmt.Errorf("%w: open must be a boolean", model.ErrInvalidRequest), http.StatusBadRequest, CodeInvalidRequest},
		{"explicit invalid request", NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{"not found", NewNotFoundError(), http.StatusNotFound, CodeNotFound},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("secret connection string"))
	assert.NotContains(t, rr.Body.String(), "secret")
}
