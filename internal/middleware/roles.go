package middleware

import (
	"net/http"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/utils/helpers"
)

// OnlyRole - доступ только для роли role. Администратор проходит всегда.
func OnlyRole(role string) func(http.Handler) http.Handler {
	return AnyRole(role)
}

func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{})
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := auth.FromContext(r.Context())
			if p.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}
			if _, found := roleSet[p.Role]; !found {
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission - доступ при наличии права perm.
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.FromContext(r.Context()).HasPermission(perm) {
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
