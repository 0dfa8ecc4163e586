package auth

import (
	"net/http"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleRefreshSession re-reads the provider's view of the logged-in
// user, picking up out-of-band changes such as a completed email
// verification, and rotates the access cookie.
func (arm *AuthRoutesManager) HandleRefreshSession(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil {
		arm.logger.Warn("Refresh token not found in cookies", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Refresh token missing"), gecho.Send())
		return
	}

	if _, err := lib.ParseToken(refreshToken, arm.accountService.GetRefreshTokenSecret()); err != nil {
		arm.logger.Warn("Failed to parse refresh token", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid refresh token"), gecho.Send())
		return
	}

	user := arm.store.RefreshSession(r.Context())
	if user == nil {
		gecho.Unauthorized(w, gecho.WithMessage("No active session"), gecho.Send())
		return
	}

	accessToken, err := arm.accountService.GenerateAccessToken(user)
	if err != nil {
		arm.logger.Error("Failed to generate access token", gecho.Field("error", err), gecho.Field("uid", user.Uid))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to refresh session. Please try again"), gecho.Send())
		return
	}
	lib.SetCookie(lib.AccessCookieName, accessToken, arm.accountService.GetAccessTokenExpiration(), w)

	gecho.Success(w,
		gecho.WithMessage("Session refreshed successfully"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
