package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = ginkgo.Describe("Handler", func() {
	var (
		router   *chi.Mux
		mockRepo *mockUserRepository
		service  *Service
	)

	do := func(method, path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decodeError := func(rec *httptest.ResponseRecorder) errorEnvelope {
		var env errorEnvelope
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(gomega.Succeed())
		return env
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service = NewService(mockRepo, newTestTokens(time.Hour), NewBcryptHasher(bcrypt.MinCost), newTestLogger())
		h := NewHandler(service)

		router = chi.NewRouter()
		router.Post("/auth/register", h.Register)
		router.Post("/auth/login", h.Login)
		router.Group(func(pr chi.Router) {
			pr.Use(h.AuthMiddleware)
			pr.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
				p, _ := PrincipalFromContext(r.Context())
				h.WriteJSON(w, http.StatusOK, map[string]string{
					"username": p.Username,
					"name":     internal.PrincipalNameFromContext(r.Context()),
				})
			})
			pr.With(RequireAdmin()).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})

	ginkgo.Describe("POST /auth/register", func() {
		ginkgo.It("should return 200 with the token and redacted user", func() {
			rec := do(http.MethodPost, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"pw123"}`, "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKey("accessToken"))
			gomega.Expect(body).To(gomega.HaveKey("expiresAt"))
			gomega.Expect(body["user"]).To(gomega.HaveKeyWithValue("role", "USER"))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("password"))
		})

		ginkgo.It("should return 409 for a duplicate username", func() {
			do(http.MethodPost, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"pw123"}`, "")
			rec := do(http.MethodPost, "/auth/register", `{"username":"alice","email":"b@example.com","password":"pw123"}`, "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))
			gomega.Expect(decodeError(rec).Error.Code).To(gomega.Equal(string(internal.ErrCodeDuplicateUsername)))
		})

		ginkgo.It("should return 400 for malformed JSON", func() {
			rec := do(http.MethodPost, "/auth/register", `{"username":`, "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should return 400 for unknown fields", func() {
			rec := do(http.MethodPost, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"pw123","role":"ADMIN"}`, "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(mockRepo.users).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("POST /auth/login", func() {
		ginkgo.BeforeEach(func() {
			do(http.MethodPost, "/auth/register", `{"username":"alice","email":"alice@example.com","password":"pw123"}`, "")
		})

		ginkgo.It("should return 200 for valid credentials", func() {
			rec := do(http.MethodPost, "/auth/login", `{"usernameOrEmail":"alice@example.com","password":"pw123"}`, "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should return 401 for bad credentials", func() {
			rec := do(http.MethodPost, "/auth/login", `{"usernameOrEmail":"alice","password":"wrong"}`, "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeError(rec).Error.Code).To(gomega.Equal(string(internal.ErrCodeInvalidCredentials)))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var token string

		ginkgo.BeforeEach(func() {
			resp, err := service.Register(context.Background(), RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "pw123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			token = resp.AccessToken
		})

		ginkgo.It("should attach the principal", func() {
			rec := do(http.MethodGet, "/whoami", "", token)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"username":"alice"`))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"name":"alice"`))
		})

		ginkgo.It("should accept a lowercase scheme", func() {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", "bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should return 401 without a token", func() {
			rec := do(http.MethodGet, "/whoami", "", "")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeError(rec).Error.Code).To(gomega.Equal(string(internal.ErrCodeMissingToken)))
		})

		ginkgo.It("should return 401 for an invalid token", func() {
			rec := do(http.MethodGet, "/whoami", "", token+"x")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeError(rec).Error.Code).To(gomega.Equal(string(internal.ErrCodeInvalidToken)))
		})

		ginkgo.It("should return 401 when the subject no longer exists", func() {
			mockRepo.users = nil
			rec := do(http.MethodGet, "/whoami", "", token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 403 when the role is not permitted", func() {
			rec := do(http.MethodGet, "/admin", "", token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should let admins through role checks", func() {
			mockRepo.users[0].Role = user.RoleAdmin
			rec := do(http.MethodGet, "/admin", "", token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		})
	})
})
