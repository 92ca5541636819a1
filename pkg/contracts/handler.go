package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// WebhookHandler exposes callback routes that must be served outside the
// client-facing middleware chain.
type WebhookHandler interface {
	RegisterWebhookRoutes(*httprouter.Router)
}
