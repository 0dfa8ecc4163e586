package auth

import (
	"net/http"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleLogout clears the durable session and both token cookies. It
// never fails from the client's point of view.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	arm.store.Logout(r.Context())

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
