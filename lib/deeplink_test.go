package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5493364180739", WhatsAppLink("+54 9 336 418-0739", ""))
	assert.Equal(t, "https://wa.me/5493364180739?text=Hola%21+Quiero+info", WhatsAppLink("5493364180739", "Hola! Quiero info"))
}

func TestMailtoLink(t *testing.T) {
	assert.Equal(t, "mailto:ventas@cbllstech.com", MailtoLink("ventas@cbllstech.com", "", ""))

	link := MailtoLink("ventas@cbllstech.com", "Consulta", "Hola")
	assert.Contains(t, link, "mailto:ventas@cbllstech.com?")
	assert.Contains(t, link, "subject=Consulta")
	assert.Contains(t, link, "body=Hola")
}
