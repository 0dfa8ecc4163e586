package storefront

import (
	"fmt"
	"net/http"
	"strconv"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

// WhatsAppContact handles GET /contact/whatsapp. With a product_id it
// builds a product inquiry message, otherwise a generic greeting. The
// number comes from the live configuration, so an admin edit takes
// effect without a deploy.
func (srm *StorefrontRoutesManager) WhatsAppContact(w http.ResponseWriter, r *http.Request) {
	cfg := srm.store.Config()

	message := r.URL.Query().Get("message")
	if message == "" {
		message = "Hola! Me gustaría recibir más información."
	}
	if idStr := r.URL.Query().Get("product_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			gecho.BadRequest(w,
				gecho.WithMessage("Invalid product ID"),
				gecho.Send(),
			)
			return
		}

		found := false
		for _, product := range srm.store.Products() {
			if product.ID == id {
				message = fmt.Sprintf("Hola! Me interesa el producto: %s", product.Name)
				found = true
				break
			}
		}
		if !found {
			gecho.NotFound(w,
				gecho.WithMessage("Product not found"),
				gecho.Send(),
			)
			return
		}
	}

	gecho.Success(w,
		gecho.WithData(map[string]string{
			"link": lib.WhatsAppLink(cfg.WhatsappNumber, message),
		}),
		gecho.Send(),
	)
}

// EmailContact handles GET /contact/email, returning a mailto link for
// the configured shop address.
func (srm *StorefrontRoutesManager) EmailContact(w http.ResponseWriter, r *http.Request) {
	cfg := srm.store.Config()

	subject := r.URL.Query().Get("subject")
	if subject == "" {
		subject = "Consulta desde la tienda"
	}
	body := r.URL.Query().Get("body")

	gecho.Success(w,
		gecho.WithData(map[string]string{
			"link": lib.MailtoLink(cfg.Email, subject, body),
		}),
		gecho.Send(),
	)
}
