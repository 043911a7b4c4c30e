package router_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pothen/internal/domain"
	"pothen/internal/handler"
	"pothen/internal/router"
	"pothen/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func setup(t *testing.T) (*gin.Engine, *mocks.MockDeclarationService, *mocks.MockStatsService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	declSvc := new(mocks.MockDeclarationService)
	statsSvc := new(mocks.MockStatsService)
	r := router.Setup(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		[]string{"http://localhost:3000"},
		handler.NewHealthHandler(okPinger{}),
		handler.NewDeclarationHandler(declSvc),
		handler.NewStatsHandler(statsSvc),
	)
	return r, declSvc, statsSvc
}

func TestRouter_Routes(t *testing.T) {
	r, declSvc, statsSvc := setup(t)

	id := uuid.New()
	declSvc.On("List", mock.Anything, 0, 20).Return([]domain.DeclarationWithPerson{}, 0, nil)
	declSvc.On("Get", mock.Anything, id).Return(nil, domain.ErrDeclarationNotFound)
	statsSvc.On("GetStats", mock.Anything).Return(&domain.Stats{ByYear: []domain.YearStats{}}, nil)

	tests := []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/api/v1/declarations", http.StatusOK},
		{"/api/v1/declarations/" + id.String(), http.StatusNotFound},
		{"/api/v1/stats", http.StatusOK},
		{"/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, http.NoBody)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_WriteMethodsNotRouted(t *testing.T) {
	r, _, _ := setup(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/declarations", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
