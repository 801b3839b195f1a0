package internal

// Controller marks a type as dispatchable by the front controller.
// User controllers satisfy it by embedding Base; the marker replaces the
// runtime "conforms to Controller" check with a compile-time fact.
type Controller interface {
	strutController()
}

// Base is embedded into controller types to satisfy the Controller interface.
//
// Example:
//
//	type Users struct {
//	    strut.Base
//	    repo *repository.Queries
//	}
//
//	func (u *Users) Get(c strut.Context) error {
//	    return c.JSON(http.StatusOK, u.repo.List())
//	}
type Base struct{}

func (Base) strutController() {}

// Verb capabilities. A controller handles an HTTP method by implementing the
// matching interface; absence of the interface yields 405 at dispatch time.
type (
	// GetHandler handles GET requests.
	GetHandler interface {
		Get(c Context) error
	}

	// PostHandler handles POST requests.
	PostHandler interface {
		Post(c Context) error
	}

	// PutHandler handles PUT requests.
	PutHandler interface {
		Put(c Context) error
	}

	// PatchHandler handles PATCH requests.
	PatchHandler interface {
		Patch(c Context) error
	}

	// DeleteHandler handles DELETE requests.
	DeleteHandler interface {
		Delete(c Context) error
	}

	// HeadHandler handles HEAD requests.
	HeadHandler interface {
		Head(c Context) error
	}

	// OptionsHandler handles OPTIONS requests.
	OptionsHandler interface {
		Options(c Context) error
	}
)

// Factory constructs a fresh controller instance per request.
type Factory func() Controller

// ErrorControllerName is the conventional registry name for the controller
// that renders error responses. It is resolved module-first, then globally.
const ErrorControllerName = "Error"

// handlerForMethod returns the controller's handler for the lowercased HTTP
// method, or false when the controller does not implement the verb.
func handlerForMethod(ctrl Controller, method string) (HandlerFunc, bool) {
	switch method {
	case "get":
		if h, ok := ctrl.(GetHandler); ok {
			return h.Get, true
		}
	case "post":
		if h, ok := ctrl.(PostHandler); ok {
			return h.Post, true
		}
	case "put":
		if h, ok := ctrl.(PutHandler); ok {
			return h.Put, true
		}
	case "patch":
		if h, ok := ctrl.(PatchHandler); ok {
			return h.Patch, true
		}
	case "delete":
		if h, ok := ctrl.(DeleteHandler); ok {
			return h.Delete, true
		}
	case "head":
		if h, ok := ctrl.(HeadHandler); ok {
			return h.Head, true
		}
	case "options":
		if h, ok := ctrl.(OptionsHandler); ok {
			return h.Options, true
		}
	}
	return nil, false
}
