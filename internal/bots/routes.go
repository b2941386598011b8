package bots

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the bot webhook endpoints on the given router.
func RegisterRoutes(r chi.Router, whatsappHandler *WhatsAppHandler) {
	r.Get("/api/bots/whatsapp/webhook", whatsappHandler.HandleVerify)
	r.Post("/api/bots/whatsapp/webhook", whatsappHandler.HandleEvent)
}
