// Package role keeps the caller's active profile role in a client-side
// cookie. The cookie is a display and query-scoping hint only; it is
// deliberately readable by the client and carries no server-side state.
package role

import (
	"net/http"
	"time"

	"github.com/bizexpense/expense-manager/internal/catalog"
)

const (
	// CookieName matches the cookie the original UI already set, so existing
	// clients keep their selection.
	CookieName = "bem-active-role"

	cookieMaxAge = int(365 * 24 * time.Hour / time.Second)
)

// ActiveRole reads the stored role preference, defaulting to the
// administrative role when the cookie is absent or unrecognized.
func ActiveRole(r *http.Request) catalog.Role {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return catalog.RoleSuperAdmin
	}
	return catalog.ParseRole(cookie.Value)
}

// SetActiveRole overwrites the stored preference. Path-scoped to the whole
// site, one year expiry, and intentionally not HttpOnly: the client reads it
// to highlight the selected role.
func SetActiveRole(w http.ResponseWriter, role catalog.Role) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(role),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
