package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/page"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockRepository struct {
	users   []*User
	listErr error
}

func (m *mockRepository) Save(_ context.Context, u *User) error {
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, u)
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id int64) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockRepository) FindByUsernameOrEmail(_ context.Context, identifier string) (*User, error) {
	for _, u := range m.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockRepository) FindAll(_ context.Context, req page.Request) ([]*User, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	end := req.Offset() + req.Size
	if end > len(m.users) {
		end = len(m.users)
	}
	if req.Offset() >= len(m.users) {
		return nil, int64(len(m.users)), nil
	}
	return m.users[req.Offset():end], int64(len(m.users)), nil
}

func (m *mockRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsernameOrEmail(ctx, username)
	return err == nil, nil
}

func (m *mockRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByUsernameOrEmail(ctx, email)
	return err == nil, nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		repo    *mockRepository
		service *Service
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = &mockRepository{}
		service = NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
		gomega.Expect(repo.Save(ctx, NewUser("alice", "alice@example.com", "hash"))).To(gomega.Succeed())
		gomega.Expect(repo.Save(ctx, NewUser("bob", "bob@example.com", "hash"))).To(gomega.Succeed())
	})

	ginkgo.It("should return the redacted view by username or email", func() {
		v, err := service.GetByIdentifier(ctx, "bob@example.com")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(*v).To(gomega.Equal(View{ID: 2, Username: "bob", Email: "bob@example.com", Role: RoleUser}))
	})

	ginkgo.It("should list users as a page", func() {
		p, err := service.List(ctx, page.Request{Number: 0, Size: 1})

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(p.Content).To(gomega.HaveLen(1))
		gomega.Expect(p.TotalElements).To(gomega.Equal(int64(2)))
		gomega.Expect(p.TotalPages).To(gomega.Equal(2))
	})

	ginkgo.It("should wrap repository failures", func() {
		repo.listErr = errors.New("database error")

		_, err := service.List(ctx, page.Request{Size: 10})
		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("database error")))
	})

	ginkgo.Describe("Handler", func() {
		var h *Handler

		ginkgo.BeforeEach(func() {
			h = NewHandler(service)
		})

		ginkgo.It("should serve the current user without the password hash", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(internal.ContextWithPrincipalName(req.Context(), "alice"))
			rec := httptest.NewRecorder()

			h.GetCurrentUser(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.MatchJSON(`{"id":1,"username":"alice","email":"alice@example.com","role":"USER"}`))
		})

		ginkgo.It("should reject anonymous callers", func() {
			rec := httptest.NewRecorder()
			h.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should page the user list", func() {
			rec := httptest.NewRecorder()
			h.ListUsers(rec, httptest.NewRequest(http.MethodGet, "/users?size=1&sort=username,desc", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("totalElements", float64(2)))
		})

		ginkgo.It("should reject an oversized page", func() {
			rec := httptest.NewRecorder()
			h.ListUsers(rec, httptest.NewRequest(http.MethodGet, "/users?size=500", nil))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})
})
