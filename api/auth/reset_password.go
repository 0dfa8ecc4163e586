package auth

import (
	"net/http"

	"cblls_server/lib"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleResetPassword consumes a reset token and sets the new password.
func (arm *AuthRoutesManager) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ResetPasswordRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Token and new password are required"), gecho.Send())
		return
	}

	if err := arm.accountService.ResetPassword(r.Context(), body.Token, body.Password); err != nil {
		arm.logger.Warn("Password reset failed", gecho.Field("error_detail", lib.GetDetailForLogging(err)))
		gecho.BadRequest(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Password reset successfully"),
		gecho.Send(),
	)
}
