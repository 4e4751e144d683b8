package middleware

import (
	"net/http"

	"docvault/internal/httputil"
)

// TenantHeader is the request header carrying the tenant scope for folder
// and file routes.
const TenantHeader = "X-Tenant-ID"

// Tenant resolves the tenant scope from the request header and stores it in
// the request context. Routes that do not need a tenant (tenant creation,
// health) are exempt.
func Tenant(exempt ...string) func(http.Handler) http.Handler {
	exemptSet := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		exemptSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptSet[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			tenantID := r.Header.Get(TenantHeader)
			if tenantID != "" {
				r = httputil.WithTenantID(r, tenantID)
			}

			next.ServeHTTP(w, r)
		})
	}
}
