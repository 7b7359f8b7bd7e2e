package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("JWTTokenService", func() {
	var alice *user.User

	ginkgo.BeforeEach(func() {
		alice = &user.User{ID: 7, Username: "alice", Email: "alice@example.com", Role: user.RoleAdmin}
	})

	ginkgo.Describe("NewJWTTokenService", func() {
		ginkgo.It("should reject a short secret", func() {
			_, err := NewJWTTokenService(TokenConfig{Secret: "short", TTL: time.Hour})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a non-positive ttl", func() {
			_, err := NewJWTTokenService(TokenConfig{Secret: testSecret})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Issue and Verify", func() {
		ginkgo.It("should round-trip subject and role", func() {
			tokens := newTestTokens(time.Hour)

			token, err := tokens.Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokens.Verify(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Subject).To(gomega.Equal("alice"))
			gomega.Expect(claims.Role).To(gomega.Equal(user.RoleAdmin))
			gomega.Expect(claims.Issuer).To(gomega.Equal("employee-management"))
		})

		ginkgo.It("should report the expiry as issue time plus ttl", func() {
			issuedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
			tokens := newTestTokens(time.Hour, WithClock(func() time.Time { return issuedAt }))

			token, err := tokens.Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			exp, err := tokens.ExpiryOf(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(exp.Equal(issuedAt.Add(time.Hour))).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an expired token", func() {
			now := time.Now()
			tokens := newTestTokens(time.Minute, WithClock(func() time.Time { return now }))
			token, err := tokens.Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			now = now.Add(2 * time.Minute)
			_, err = tokens.Verify(token)

			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
			gomega.Expect(errors.Is(err, jwt.ErrTokenExpired)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a tampered token", func() {
			tokens := newTestTokens(time.Hour)
			token, err := tokens.Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			parts := strings.Split(token, ".")
			forged, err := newTestTokens(time.Hour).Issue(&user.User{Username: "mallory", Role: user.RoleAdmin})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

			_, err = tokens.Verify(tampered)
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			other, err := NewJWTTokenService(TokenConfig{Secret: testSecret + "-other", Issuer: "employee-management", TTL: time.Hour})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			token, err := other.Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = newTestTokens(time.Hour).Verify(token)
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject garbage", func() {
			_, err := newTestTokens(time.Hour).Verify("not.a.jwt")
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())

			_, err = newTestTokens(time.Hour).Verify("")
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("with an RSA key pair", func() {
		var key *rsa.PrivateKey

		ginkgo.BeforeEach(func() {
			var err error
			key, err = rsa.GenerateKey(rand.Reader, 2048)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should sign with RS256", func() {
			tokens, err := NewJWTTokenService(TokenConfig{PrivateKey: key, TTL: time.Hour})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			token, err := tokens.Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(parsed.Method.Alg()).To(gomega.Equal("RS256"))

			claims, err := tokens.Verify(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Username()).To(gomega.Equal("alice"))
		})

		ginkgo.It("should reject an HS256 token", func() {
			tokens, err := NewJWTTokenService(TokenConfig{PrivateKey: key, TTL: time.Hour})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			hsToken, err := newTestTokens(time.Hour).Issue(alice)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokens.Verify(hsToken)
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
		})
	})
})
