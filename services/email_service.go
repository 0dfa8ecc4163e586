package services

import (
	"fmt"
	"sync"

	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendVerificationEmail sends the verify-email link for a freshly
// registered account. The token itself is owned by AccountService.
func (es *EmailService) SendVerificationEmail(account *structs.Account, token string) error {
	verificationLink := fmt.Sprintf("%s/auth/verify-email?token=%s&uid=%s", es.cfg.Server.ServerURL, token, account.Uid)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a73e8; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.button { display: inline-block; padding: 15px 30px; background-color: #1a73e8; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Verifica tu correo</h1>
				</div>
				<div class="content">
					<p>Hola %s,</p>
					<p>Gracias por registrarte en CBLLS Tech. Verifica tu correo haciendo clic en el siguiente enlace:</p>
					<p style="text-align: center;">
						<a href="%s" class="button">Verificar correo</a>
					</p>
					<p>Este enlace expira en %.0f minutos.</p>
				</div>
				<div class="footer">
					<p>Si no creaste esta cuenta, puedes ignorar este correo.</p>
					<p>CBLLS Tech &middot; %s</p>
				</div>
			</div>
		</body>
		</html>
	`, account.Name, verificationLink, es.cfg.Email.VerificationTokenExpiry.Minutes(), es.cfg.Email.SupportEmail)

	if err := es.SendEmail([]string{account.Email}, "Verifica tu correo - CBLLS Tech", emailBody); err != nil {
		return err
	}

	es.logger.Debug("Verification email sent", gecho.Field("uid", account.Uid))
	return nil
}

// SendPasswordResetEmail sends the reset-password link.
func (es *EmailService) SendPasswordResetEmail(account *structs.Account, token string) error {
	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", es.cfg.Server.FrontendURL, token)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a73e8; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.button { display: inline-block; padding: 15px 30px; background-color: #1a73e8; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Restablecer contrase&ntilde;a</h1>
				</div>
				<div class="content">
					<p>Hola %s,</p>
					<p>Recibimos una solicitud para restablecer tu contrase&ntilde;a. Haz clic en el siguiente enlace para continuar:</p>
					<p style="text-align: center;">
						<a href="%s" class="button">Restablecer contrase&ntilde;a</a>
					</p>
					<p>Este enlace expira en %.0f minutos.</p>
				</div>
				<div class="footer">
					<p>Si no solicitaste este cambio, puedes ignorar este correo.</p>
					<p>CBLLS Tech &middot; %s</p>
				</div>
			</div>
		</body>
		</html>
	`, account.Name, resetLink, es.cfg.Email.ResetTokenExpiry.Minutes(), es.cfg.Email.SupportEmail)

	if err := es.SendEmail([]string{account.Email}, "Restablecer contraseña - CBLLS Tech", emailBody); err != nil {
		return err
	}

	es.logger.Debug("Password reset email sent", gecho.Field("uid", account.Uid))
	return nil
}
