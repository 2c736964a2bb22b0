package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts a group of routes on the application or health router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
