package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every service's HTTP surface.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
