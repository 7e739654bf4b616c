package handler

import "github.com/julienschmidt/httprouter"

// Router groups the availability service's HTTP surfaces behind a single
// route registrar.
type Router struct {
	availability *AvailabilityHandler
	reservations *ReservationHandler
}

func NewRouter(availability *AvailabilityHandler, reservations *ReservationHandler) *Router {
	return &Router{
		availability: availability,
		reservations: reservations,
	}
}

func (r *Router) RegisterRoutes(router *httprouter.Router) {
	r.availability.RegisterRoutes(router)
	r.reservations.RegisterRoutes(router)
}
