package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpcontext "github.com/dtroode/studyprofile-server/internal/api/http/context"
	"github.com/dtroode/studyprofile-server/internal/mocks"
	"github.com/dtroode/studyprofile-server/internal/testutil"
)

func newAuthRouter(ts TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cm := httpcontext.NewManager()
	auth := NewAuthenticate(ts, cm, testutil.MakeNoopLogger())

	r := gin.New()
	r.GET("/private", auth.RequireAuth(), func(c *gin.Context) {
		userID, ok := cm.GetUserIDFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthenticate_RequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setupMock  func(ts *mocks.TokenService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "missing authorization token",
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "missing authorization token",
		},
		{
			name:   "invalid token",
			header: "Bearer broken",
			setupMock: func(ts *mocks.TokenService) {
				ts.On("GetUserID", mock.Anything, "broken").Return(int64(0), errors.New("invalid token"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid authorization token",
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setupMock: func(ts *mocks.TokenService) {
				ts.On("GetUserID", mock.Anything, "good").Return(int64(7), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"user_id":7`,
		},
		{
			name:   "lowercase scheme",
			header: "bearer good",
			setupMock: func(ts *mocks.TokenService) {
				ts.On("GetUserID", mock.Anything, "good").Return(int64(3), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"user_id":3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := mocks.NewTokenService(t)
			if tt.setupMock != nil {
				tt.setupMock(ts)
			}

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(ts).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
