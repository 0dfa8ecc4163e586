package auth

import (
	"net/http"

	"cblls_server/lib"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleRecoverPassword starts the reset flow. The response is the same
// whether or not the email belongs to an account.
func (arm *AuthRoutesManager) HandleRecoverPassword(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RecoverPasswordRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("A valid email address is required"), gecho.Send())
		return
	}

	if err := arm.accountService.SendPasswordReset(r.Context(), body.Email); err != nil {
		arm.logger.Error("Failed to start password recovery", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to process the request. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("If an account exists for this email, a reset link has been sent"),
		gecho.Send(),
	)
}
