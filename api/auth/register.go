package auth

import (
	"net/http"

	"cblls_server/lib"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleRegister creates the account and, like login, establishes the
// session right away on success.
func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your registration information and try again"), gecho.Send())
		return
	}

	result := arm.store.Register(r.Context(), body.Name, body.Email, body.Password)
	if !result.Success {
		gecho.BadRequest(w, gecho.WithMessage(result.Message), gecho.Send())
		return
	}

	if err := arm.issueSessionCookies(result.User, w); err != nil {
		arm.logger.Error("Failed to generate session tokens", gecho.Field("error", err), gecho.Field("uid", result.User.Uid))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete registration. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Registration successful"),
		gecho.WithData(result.User),
		gecho.Send(),
	)
}
