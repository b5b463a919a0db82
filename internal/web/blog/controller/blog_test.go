package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/blog/model"
)

// TestAbortPostErr verifies rejected input is the caller's fault while
// store and storage failures surface as a bad gateway.
func TestAbortPostErr(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]struct {
		err    error
		status int
	}{
		"validation": {
			err:    errors.Wrap(model.ErrInvalidPost, "post type \"letter\""),
			status: http.StatusBadRequest,
		},
		"store failure": {
			err:    errors.New("save post: deadline exceeded"),
			status: http.StatusBadGateway,
		},
		"storage failure": {
			err:    errors.New("upload image media: connection refused"),
			status: http.StatusBadGateway,
		},
	}
	for name, tc := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)

		abortPostErr(ctx, tc.err)
		require.Equal(t, tc.status, w.Code, name)
	}
}
