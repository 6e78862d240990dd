package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"admin-dashboard/internal"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Auth middleware", func() {
	var (
		handler  *Handler
		tokenGen *JWTTokenGenerator
		next     http.Handler
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("test-secret-at-least-16-chars", time.Hour)
		service := NewService(newMockRepository(), tokenGen, bcrypt.MinCost)
		handler = NewHandler(service)

		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := internal.IdentityFromContext(r.Context())
			w.Header().Set("X-Subject", identity.Subject)
			w.WriteHeader(http.StatusOK)
		})
	})

	chain := func() http.Handler {
		return handler.AuthMiddleware(handler.RequireAdmin(next))
	}

	ginkgo.It("accepts a Bearer-prefixed token", func() {
		token, err := tokenGen.GenerateToken("admin@example.com", RoleAdmin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		chain().ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(w.Header().Get("X-Subject")).To(gomega.Equal("admin@example.com"))
	})

	ginkgo.It("accepts a raw token without the Bearer scheme", func() {
		token, err := tokenGen.GenerateToken("admin@example.com", RoleAdmin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
		req.Header.Set("Authorization", token)
		w := httptest.NewRecorder()

		chain().ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("rejects a missing token with 401", func() {
		req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
		w := httptest.NewRecorder()

		chain().ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("rejects an expired token with 401", func() {
		expiredGen := NewJWTTokenGenerator("test-secret-at-least-16-chars", -time.Minute)
		token, err := expiredGen.GenerateToken("admin@example.com", RoleAdmin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		chain().ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("rejects a valid non-admin token with 403", func() {
		token, err := tokenGen.GenerateToken("someone@example.com", "client")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/auth/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		chain().ServeHTTP(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
	})
})
