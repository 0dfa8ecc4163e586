package auth

import (
	"net/http"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the user behind the access cookie, or an empty
// success when nobody is logged in. The storefront calls this on every
// page load, so a missing session is not an error.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.accountService.GetAccessTokenSecret())
	if err != nil {
		gecho.Success(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	user, err := arm.accountService.Lookup(r.Context(), claims.Sub)
	if err != nil {
		arm.logger.Warn("Account behind valid token no longer exists", gecho.Field("uid", claims.Sub))
		gecho.Success(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
