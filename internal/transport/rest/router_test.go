package rest_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"admin-dashboard/internal/auth"
	authJSONStore "admin-dashboard/internal/auth/jsonstore"
	"admin-dashboard/internal/record"
	"admin-dashboard/internal/store"
	"admin-dashboard/internal/transport/rest"
	"admin-dashboard/internal/user"
	userJSONStore "admin-dashboard/internal/user/jsonstore"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Router Suite")
}

var _ = Describe("Router integration", func() {
	var (
		router   *chi.Mux
		tokenGen *auth.JWTTokenGenerator
	)

	do := func(method, path, body, token string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "rest-test")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		docStore := store.NewDocumentStore(filepath.Join(dir, "db.json"))

		tokenGen = auth.NewJWTTokenGenerator("test-secret-at-least-16-chars", time.Hour)
		authService := auth.NewService(authJSONStore.NewRepository(docStore), tokenGen, bcrypt.MinCost)
		userService := user.NewService(userJSONStore.NewRepository(docStore))

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		router = chi.NewRouter()
		rest.RegisterAllRoutes(
			router,
			docStore,
			auth.NewHandler(authService),
			user.NewHandler(userService),
			record.NewHandler(docStore),
			"*",
			lg,
		)
	})

	login := func() string {
		w := do(http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"p","role":"admin"}`, "")
		ExpectWithOffset(1, w.Code).To(Equal(http.StatusCreated))

		w = do(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"p"}`, "")
		ExpectWithOffset(1, w.Code).To(Equal(http.StatusOK))

		var resp map[string]string
		ExpectWithOffset(1, json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		ExpectWithOffset(1, resp["token"]).NotTo(BeEmpty())
		return resp["token"]
	}

	It("runs the whole signup → login → manage → delete flow", func() {
		token := login()

		// duplicate signup conflicts regardless of password or role
		w := do(http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"other","role":"admin"}`, "")
		Expect(w.Code).To(Equal(http.StatusConflict))

		// add a user; status defaults to Active
		w = do(http.MethodPost, "/auth/add-user", `{"name":"Bob","email":"b@x.com","phone":"555-0100","role":"manager"}`, token)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var addResp struct {
			User user.User `json:"user"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&addResp)).To(Succeed())
		Expect(addResp.User.Status).To(Equal(user.StatusActive))
		Expect(addResp.User.ID).To(Equal(int64(1)))

		// list contains Bob
		w = do(http.MethodGet, "/auth/users", "", token)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("b@x.com"))

		// statistics see one user registered today
		w = do(http.MethodGet, "/auth/user-statistics", "", token)
		Expect(w.Code).To(Equal(http.StatusOK))

		var stats user.StatsResponse
		Expect(json.NewDecoder(w.Body).Decode(&stats)).To(Succeed())
		Expect(stats.TotalUsers).To(Equal(1))
		Expect(stats.ActiveUsers).To(Equal(1))
		Expect(stats.UsersRegisteredToday).To(Equal(1))

		// falsy merge: empty name keeps Bob, phone overwrites
		w = do(http.MethodPut, "/auth/edituser/1", `{"name":"","phone":"555-0199"}`, token)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"name":"Bob"`))
		Expect(w.Body.String()).To(ContainSubstring("555-0199"))

		// delete, then fetch and delete again both 404
		w = do(http.MethodDelete, "/auth/deleteuser/1", "", token)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/auth/users/1", "", token)
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = do(http.MethodDelete, "/auth/deleteuser/1", "", token)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects signup for non-admin roles", func() {
		w := do(http.MethodPost, "/auth/signup", `{"email":"m@x.com","password":"p","role":"manager"}`, "")
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("404s login for an unknown email", func() {
		w := do(http.MethodPost, "/auth/login", `{"email":"ghost@x.com","password":"p"}`, "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("401s login for a wrong password", func() {
		login()
		w := do(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"wrong"}`, "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("guards every management endpoint against missing tokens", func() {
		for _, route := range []struct{ method, path string }{
			{http.MethodPost, "/auth/add-user"},
			{http.MethodGet, "/auth/users"},
			{http.MethodGet, "/auth/users/1"},
			{http.MethodPut, "/auth/edituser/1"},
			{http.MethodDelete, "/auth/deleteuser/1"},
			{http.MethodGet, "/auth/user-statistics"},
			{http.MethodGet, "/api/things"},
		} {
			w := do(route.method, route.path, "", "")
			Expect(w.Code).To(Equal(http.StatusUnauthorized), route.path)
		}
	})

	It("403s every management endpoint for a valid non-admin token", func() {
		token, err := tokenGen.GenerateToken("someone@x.com", "client")
		Expect(err).NotTo(HaveOccurred())

		for _, route := range []struct{ method, path string }{
			{http.MethodPost, "/auth/add-user"},
			{http.MethodGet, "/auth/users"},
			{http.MethodGet, "/auth/users/1"},
			{http.MethodPut, "/auth/edituser/1"},
			{http.MethodDelete, "/auth/deleteuser/1"},
			{http.MethodGet, "/auth/user-statistics"},
			{http.MethodGet, "/api/things"},
		} {
			w := do(route.method, route.path, "", token)
			Expect(w.Code).To(Equal(http.StatusForbidden), route.path)
		}
	})

	It("serves the generic record API behind the admin gate", func() {
		token := login()

		w := do(http.MethodPost, "/api/notes", `{"text":"remember"}`, token)
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = do(http.MethodGet, "/api/notes/1", "", token)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("remember"))
	})

	It("answers health and ping without auth", func() {
		w := do(http.MethodGet, "/ping", "", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/health", "", "")
		Expect(w.Code).To(Equal(http.StatusOK))
	})
})
