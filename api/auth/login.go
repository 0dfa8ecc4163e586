package auth

import (
	"net/http"

	"cblls_server/lib"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleLogin checks credentials through the store, which returns a
// result instead of failing. An unsuccessful result carries the message
// shown to the user; only a broken request body is a 400.
func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	result := arm.store.Login(r.Context(), body.Email, body.Password)
	if !result.Success {
		gecho.Unauthorized(w, gecho.WithMessage(result.Message), gecho.Send())
		return
	}

	if err := arm.issueSessionCookies(result.User, w); err != nil {
		arm.logger.Error("Failed to generate session tokens", gecho.Field("error", err), gecho.Field("uid", result.User.Uid))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(result.User),
		gecho.Send(),
	)
}

// issueSessionCookies signs an access and refresh token pair for the
// user and sets both cookies.
func (arm *AuthRoutesManager) issueSessionCookies(user *structs.User, w http.ResponseWriter) error {
	accessToken, err := arm.accountService.GenerateAccessToken(user)
	if err != nil {
		return err
	}

	refreshToken, err := arm.accountService.GenerateRefreshToken(user)
	if err != nil {
		return err
	}

	lib.SetCookie(lib.RefreshCookieName, refreshToken, arm.accountService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, accessToken, arm.accountService.GetAccessTokenExpiration(), w)
	return nil
}
