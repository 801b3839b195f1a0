// Package strut provides a front-controller web framework with ordered
// regex routing, named controllers, and module-scoped registries.
//
// Every request flows through one dispatcher: bootstrap hooks run first,
// then the path is matched segment by segment against an ordered route
// table, the named controller is built from its registered factory, and
// the verb method matching the HTTP method is invoked.
//
// # Quick Start
//
// Create an application with strut.New(), register routes and controller
// factories, and call Run() to start the HTTP server:
//
//	app := strut.New(
//	    strut.WithLogger("web"),
//	    strut.WithRoutes(
//	        strut.Route{Pattern: "", Controller: "Index"}, // root path
//	        strut.Route{Pattern: `users/\d+`, Controller: "User"},
//	    ),
//	    strut.WithController("Index", func() strut.Controller { return &IndexController{} }),
//	    strut.WithController("User", func() strut.Controller { return &UserController{} }),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controllers
//
// A controller embeds [Base] and implements verb methods for the HTTP
// methods it serves. A request with a method the controller lacks gets a
// 405 response without any verb method being invoked:
//
//	type UserController struct {
//	    strut.Base
//	    repo *repository.Queries
//	}
//
//	func (ctrl *UserController) Get(c strut.Context) error {
//	    return c.Render(200, "user/show", map[string]any{"id": c.Param(1)})
//	}
//
//	func (ctrl *UserController) Post(c strut.Context) error {
//	    return c.Redirect(303, "/users/"+c.Form("id"))
//	}
//
// # Routes
//
// Route patterns are slash-separated regular expressions matched one per
// path segment, in table order. The segment count must match exactly:
//
//	strut.WithRoutes(
//	    strut.Route{Pattern: "", Controller: "Index"}, // matches /
//	    strut.Route{Pattern: `articles/\d{4}/\w+`, Controller: "Article"},
//	    strut.Route{Pattern: `.*`, Controller: "Page"}, // single-segment catch-all
//	)
//
// # Modules
//
// A request can resolve to a module (via the X-Strut-Module header, the
// STRUT_MODULE environment variable, or a custom resolver). Module
// requests use the module's own route table and controller registry:
//
//	strut.WithModuleRoutes("admin",
//	    strut.Route{Pattern: "", Controller: "Dashboard"},
//	),
//	strut.WithModuleController("admin", "Dashboard", newDashboard),
//
// # Hooks
//
// Bootstrap hooks run before routing; predispatch hooks run after routing
// but before the controller. A predispatch hook that writes a response
// ends the request:
//
//	strut.WithPredispatch(func(c strut.Context) error {
//	    if !authorized(c) {
//	        return c.Redirect(302, "/login")
//	    }
//	    return nil
//	}),
//
// # Error Handling
//
// Handlers return errors. Failed dispatches resolve a controller named
// "Error" (module registry first, then global) and invoke its Get method
// with the failure available via c.DispatchError(). Without an Error
// controller a plain text status page is written.
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM for graceful shutdown. Register cleanup with
// ShutdownHook:
//
//	app.Run(":8080",
//	    strut.ShutdownHook(db.Shutdown(pool)),
//	)
package strut
