package employee

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Handler", func() {
	var (
		router *chi.Mux
		repo   *mockRepository
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req = req.WithContext(internal.ContextWithPrincipalName(req.Context(), "alice"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var env struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(gomega.Succeed())
		return env.Error.Code
	}

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		h := NewHandler(NewService(repo, nil, slog.New(slog.NewTextHandler(io.Discard, nil))))

		router = chi.NewRouter()
		router.Route("/employees", func(r chi.Router) {
			r.Post("/", h.CreateEmployee)
			r.Get("/", h.ListEmployees)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})
	})

	const body = `{"name":"Jane Doe","position":"Engineer","department":"ENGINEERING","hireDate":"2024-01-15"}`

	ginkgo.It("should create with 201 and camelCase fields", func() {
		rec := do(http.MethodPost, "/employees", body)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
		gomega.Expect(rec.Body.String()).To(gomega.MatchJSON(`{"id":1,"name":"Jane Doe","position":"Engineer","department":"ENGINEERING","hireDate":"2024-01-15"}`))
	})

	ginkgo.It("should reject an unknown department with 400", func() {
		rec := do(http.MethodPost, "/employees", strings.Replace(body, "ENGINEERING", "LEGAL", 1))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		gomega.Expect(errorCode(rec)).To(gomega.Equal(string(internal.ErrCodeValidationFailed)))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(string(internal.ErrCodeInvalidDepartment)))
	})

	ginkgo.It("should return 404 when the caller no longer exists", func() {
		delete(repo.creators, "alice")

		rec := do(http.MethodPost, "/employees", body)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		gomega.Expect(errorCode(rec)).To(gomega.Equal(string(internal.ErrCodeCreatorNotFound)))
	})

	ginkgo.It("should page the list", func() {
		do(http.MethodPost, "/employees", body)
		do(http.MethodPost, "/employees", body)

		rec := do(http.MethodGet, "/employees?page=0&size=1&sort=name,desc", "")

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		var p struct {
			Content       []View `json:"content"`
			TotalElements int64  `json:"totalElements"`
			TotalPages    int    `json:"totalPages"`
		}
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &p)).To(gomega.Succeed())
		gomega.Expect(p.Content).To(gomega.HaveLen(1))
		gomega.Expect(p.TotalElements).To(gomega.Equal(int64(2)))
		gomega.Expect(p.TotalPages).To(gomega.Equal(2))
	})

	ginkgo.It("should reject an unknown sort field", func() {
		rec := do(http.MethodGet, "/employees?sort=createdBy", "")

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(string(internal.ErrCodeInvalidSort)))
	})

	ginkgo.It("should get, update and delete by id", func() {
		do(http.MethodPost, "/employees", body)

		rec := do(http.MethodGet, "/employees/1", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		rec = do(http.MethodPut, "/employees/1", `{"name":"Jane Roe","position":"Lead","department":"HR","hireDate":"2023-06-01"}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"department":"HR"`))

		rec = do(http.MethodDelete, "/employees/1", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(rec.Body.Len()).To(gomega.Equal(0))

		rec = do(http.MethodDelete, "/employees/1", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		gomega.Expect(errorCode(rec)).To(gomega.Equal(string(internal.ErrCodeEmployeeNotFound)))
	})

	ginkgo.It("should return 404 for a missing employee", func() {
		rec := do(http.MethodGet, "/employees/42", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
	})

	ginkgo.It("should return 400 for a non-numeric id", func() {
		rec := do(http.MethodGet, "/employees/abc", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
	})
})
