package auth

import (
	"net/http"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleVerifyEmail consumes the token from the verification link.
func (arm *AuthRoutesManager) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	uid := r.URL.Query().Get("uid")
	if token == "" || uid == "" {
		gecho.BadRequest(w, gecho.WithMessage("Verification token and uid are required"), gecho.Send())
		return
	}

	if err := arm.accountService.VerifyEmail(r.Context(), uid, token); err != nil {
		arm.logger.Warn("Email verification failed",
			gecho.Field("uid", uid),
			gecho.Field("error_detail", lib.GetDetailForLogging(err)),
		)
		gecho.BadRequest(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Email verified successfully"),
		gecho.Send(),
	)
}
