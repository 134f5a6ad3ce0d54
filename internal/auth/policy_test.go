package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/lawateaditya/Stock-Management/internal"
)

var _ = ginkgo.Describe("Policy", func() {
	var policy Policy

	ginkgo.BeforeEach(func() {
		policy = NewPolicy()
	})

	ginkgo.Describe("CanManageUsers", func() {
		ginkgo.It("should allow super admin and admin only", func() {
			gomega.Expect(policy.CanManageUsers(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanManageUsers(RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanManageUsers(RoleInwardUser)).To(gomega.BeFalse())
			gomega.Expect(policy.CanManageUsers(RoleIssuerUser)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanDeleteUsers", func() {
		ginkgo.It("should allow the super admin only", func() {
			gomega.Expect(policy.CanDeleteUsers(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanDeleteUsers(RoleAdmin)).To(gomega.BeFalse())
			gomega.Expect(policy.CanDeleteUsers(RoleInwardUser)).To(gomega.BeFalse())
			gomega.Expect(policy.CanDeleteUsers(RoleIssuerUser)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanWriteCatalog", func() {
		ginkgo.It("should allow super admin and admin only", func() {
			gomega.Expect(policy.CanWriteCatalog(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanWriteCatalog(RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanWriteCatalog(RoleInwardUser)).To(gomega.BeFalse())
			gomega.Expect(policy.CanWriteCatalog(RoleIssuerUser)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanAccessInward", func() {
		ginkgo.It("should exclude issuer users", func() {
			gomega.Expect(policy.CanAccessInward(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanAccessInward(RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanAccessInward(RoleInwardUser)).To(gomega.BeTrue())
			gomega.Expect(policy.CanAccessInward(RoleIssuerUser)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanAccessIssue", func() {
		ginkgo.It("should exclude inward users", func() {
			gomega.Expect(policy.CanAccessIssue(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanAccessIssue(RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanAccessIssue(RoleInwardUser)).To(gomega.BeFalse())
			gomega.Expect(policy.CanAccessIssue(RoleIssuerUser)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("CanViewStock", func() {
		ginkgo.It("should allow administrative roles only", func() {
			gomega.Expect(policy.CanViewStock(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanViewStock(RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.CanViewStock(RoleInwardUser)).To(gomega.BeFalse())
			gomega.Expect(policy.CanViewStock(RoleIssuerUser)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("SeesAllEntries", func() {
		ginkgo.It("should scope non-admin ledger reads to their own rows", func() {
			gomega.Expect(policy.SeesAllEntries(RoleSuperAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.SeesAllEntries(RoleAdmin)).To(gomega.BeTrue())
			gomega.Expect(policy.SeesAllEntries(RoleInwardUser)).To(gomega.BeFalse())
			gomega.Expect(policy.SeesAllEntries(RoleIssuerUser)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanDeleteEntry", func() {
		ginkgo.Context("when the actor is administrative", func() {
			ginkgo.It("should allow deleting any entry", func() {
				actor := &User{UserID: "user_admin", Role: RoleAdmin}
				gomega.Expect(policy.CanDeleteEntry(actor, "user_someone_else")).To(gomega.Succeed())
			})
		})

		ginkgo.Context("when the actor owns the entry", func() {
			ginkgo.It("should allow the delete", func() {
				actor := &User{UserID: "user_owner", Role: RoleInwardUser}
				gomega.Expect(policy.CanDeleteEntry(actor, "user_owner")).To(gomega.Succeed())
			})
		})

		ginkgo.Context("when the actor is neither admin nor owner", func() {
			ginkgo.It("should deny the delete", func() {
				actor := &User{UserID: "user_other", Role: RoleIssuerUser}
				err := policy.CanDeleteEntry(actor, "user_owner")
				gomega.Expect(err).To(gomega.Equal(internal.ErrNotEntryOwner))
			})
		})
	})

	ginkgo.Describe("Require middlewares", func() {
		var next http.Handler

		ginkgo.BeforeEach(func() {
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})

		requestAs := func(role Role) *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			user := &User{UserID: "user_000000000001", Role: role}
			return req.WithContext(ContextWithUser(req.Context(), user))
		}

		ginkgo.Context("when the user has the required role", func() {
			ginkgo.It("should pass the request through", func() {
				rec := httptest.NewRecorder()
				policy.RequireInwardAccess()(next).ServeHTTP(rec, requestAs(RoleInwardUser))
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			})
		})

		ginkgo.Context("when the role is denied", func() {
			ginkgo.It("should return 403 with the error envelope", func() {
				rec := httptest.NewRecorder()
				policy.RequireStockAccess()(next).ServeHTTP(rec, requestAs(RoleIssuerUser))

				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
				var body internal.Response
				gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
				gomega.Expect(body.Error.Code).To(gomega.Equal(internal.ErrCodeRoleDenied))
			})
		})

		ginkgo.Context("when no user is attached to the context", func() {
			ginkgo.It("should return 401", func() {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/protected", nil)
				policy.RequireUserManagement()(next).ServeHTTP(rec, req)

				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
				var body internal.Response
				gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
				gomega.Expect(body.Error.Code).To(gomega.Equal(internal.ErrCodeMissingCredentials))
			})
		})
	})
})

var _ = ginkgo.Describe("ParseRole", func() {
	ginkgo.It("should accept every defined role", func() {
		for _, s := range []string{"super_admin", "admin", "inward_user", "issuer_user"} {
			role, err := ParseRole(s)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(role.String()).To(gomega.Equal(s))
		}
	})

	ginkgo.It("should reject unknown values", func() {
		_, err := ParseRole("manager")
		gomega.Expect(err).To(gomega.HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidRole))
	})

	ginkgo.It("should reject the empty string", func() {
		_, err := ParseRole("")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
