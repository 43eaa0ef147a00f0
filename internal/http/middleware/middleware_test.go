package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"joywork.app/api/common/logger"
	"joywork.app/api/internal/http/middleware"
	"joywork.app/api/internal/model"
	"joywork.app/api/internal/service"
)

type mockAuthService struct {
	validateSessionFn func(ctx context.Context, sessionID int64) (*model.User, error)
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(ctx, sessionID)
	}
	return nil, service.ErrSessionExpired
}

var _ = Describe("RequireSession", func() {
	var (
		router *gin.Engine
		auth   *mockAuthService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		auth = &mockAuthService{}
		router.GET("/me", middleware.RequireSession(auth), func(c *gin.Context) {
			userID, ok := middleware.UserID(c)
			Expect(ok).To(BeTrue())
			fields := logger.GetLogFields(c.Request.Context())
			Expect(fields.UserID).To(HaveValue(Equal(userID)))
			c.JSON(http.StatusOK, gin.H{"user_id": userID})
		})
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("accepts the session cookie", func() {
		auth.validateSessionFn = func(_ context.Context, sessionID int64) (*model.User, error) {
			Expect(sessionID).To(Equal(int64(42)))
			return &model.User{ID: 7}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "42"})
		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"user_id": 7}`))
	})

	It("falls back to the session header", func() {
		auth.validateSessionFn = func(_ context.Context, sessionID int64) (*model.User, error) {
			Expect(sessionID).To(Equal(int64(43)))
			return &model.User{ID: 8}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.SessionIDHeader, "43")

		Expect(serve(req).Code).To(Equal(http.StatusOK))
	})

	DescribeTable("rejects the request",
		func(header string, validateErr error, status int, code string) {
			auth.validateSessionFn = func(context.Context, int64) (*model.User, error) {
				return nil, validateErr
			}

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set(middleware.SessionIDHeader, header)
			}
			w := serve(req)

			Expect(w.Code).To(Equal(status))
			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["code"]).To(Equal(code))
		},
		Entry("without a session", "", nil, http.StatusUnauthorized, "unauthenticated"),
		Entry("with a malformed id", "abc", nil, http.StatusUnauthorized, "unauthenticated"),
		Entry("with an expired session", "42", service.ErrSessionExpired, http.StatusUnauthorized, "unauthenticated"),
		Entry("when the user is gone", "42", service.ErrUserNotFound, http.StatusUnauthorized, "unauthenticated"),
		Entry("when the lookup fails", "42", errors.New("db down"), http.StatusInternalServerError, "internal_error"),
	)
})

var _ = Describe("Recovery", func() {
	It("turns panics into 500", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/boom", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(MatchJSON(`{"error": "internal server error", "code": "internal_error"}`))
	})
})

var _ = Describe("TraceHeader", func() {
	It("omits the header without an active span", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.TraceHeader("X-Trace-Id"))
		router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("X-Trace-Id")).To(BeEmpty())
	})
})
