package auth

import (
	"net/http"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleResendVerification issues a fresh verification token for an
// unverified account.
func (arm *AuthRoutesManager) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[resendVerificationRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("A valid email address is required"), gecho.Send())
		return
	}

	if err := arm.accountService.ResendVerification(r.Context(), body.Email); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("No account found for this email"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to resend verification email", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to send verification email. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Verification email sent"),
		gecho.Send(),
	)
}
