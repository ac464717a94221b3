package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"olive-mind/internal/events"
	"olive-mind/internal/storage"
)

func errorResponse(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	writeCoordinatorError(c, err)
	return recorder.Code, recorder.Body.String()
}

func TestWriteCoordinatorErrorMapping(t *testing.T) {
	code, body := errorResponse(t, &events.ValidationError{Fields: []string{"venue"}})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, body, "venue")

	code, _ = errorResponse(t, events.ErrPermissionDenied)
	require.Equal(t, http.StatusForbidden, code)

	code, _ = errorResponse(t, storage.ErrNotFound)
	require.Equal(t, http.StatusNotFound, code)
}

func TestWriteCoordinatorErrorPartialFailureWithNotFoundCause(t *testing.T) {
	// A partial failure can be caused by a missing dependent row. The
	// response must still point the caller at regenerate, not report a
	// plain 404 for an event that exists.
	err := &events.PartialFailureError{
		EventID: "ev-1",
		Step:    "message regeneration",
		Err:     storage.ErrNotFound,
	}

	code, body := errorResponse(t, err)
	require.Equal(t, http.StatusInternalServerError, code)
	require.Contains(t, body, "regenerate")
	require.Contains(t, body, "ev-1")
}
