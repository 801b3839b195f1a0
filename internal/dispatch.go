package internal

import (
	"fmt"
	"net"
	"net/http"
)

// dispatch resolves one request to exactly one controller method call, or
// terminates it with a diagnostic response. It is the innermost HandlerFunc;
// middlewares wrap it and the application's error path consumes its errors.
func (a *App) dispatch(c Context) error {
	rc, ok := c.(*requestContext)
	if !ok {
		return ErrInternal("unsupported context implementation")
	}

	module := rc.Module()

	// Bootstrap hooks for the resolved module run before any routing.
	for _, hook := range a.bootstraps[module] {
		if err := hook(rc); err != nil {
			return fmt.Errorf("bootstrap %q: %w", module, err)
		}
		if rc.Written() {
			return nil
		}
	}

	params := splitPath(rc.Request().URL.Path)

	// Path-based language negotiation consumes a leading supported language
	// segment unless it is the default language.
	if a.locales != nil {
		lang, rest := a.locales.ResolvePath(params)
		rc.setLanguage(lang)
		params = rest
	}
	rc.setParams(params)

	routes := a.routes
	if module != "" {
		moduleRoutes, ok := a.moduleRoutes[module]
		if !ok {
			// A registered module without routes is a configuration error,
			// not a routing miss.
			return fmt.Errorf("%w: %q", ErrNoModuleRoutes, module)
		}
		routes = moduleRoutes
	}

	name, ok := routes.match(params)
	if !ok {
		return ErrNotFound(http.StatusText(http.StatusNotFound))
	}
	rc.setController(name)

	for _, hook := range a.predispatch {
		if err := hook(rc); err != nil {
			return fmt.Errorf("predispatch: %w", err)
		}
		if rc.Written() {
			return nil
		}
	}

	if scheme := a.schemeFor(name, rc.IsSecure()); scheme != "" {
		return rc.Redirect(http.StatusMovedPermanently, schemeURL(rc.Request(), scheme))
	}

	factory := a.lookupController(module, name)
	if factory == nil {
		return fmt.Errorf("%w: %q (module %q)", ErrControllerNotRegistered, name, module)
	}

	ctrl := factory()
	handler, ok := handlerForMethod(ctrl, rc.Method())
	if !ok {
		return ErrMethodNotAllowed(http.StatusText(http.StatusMethodNotAllowed))
	}

	return handler(rc)
}

// schemeFor evaluates the HTTPS policy for the matched controller and returns
// the scheme to redirect to, or "" to continue:
//
//	enforced,   secure   -> continue
//	enforced,   insecure -> "https"
//	controller in set, secure   -> continue
//	controller in set, insecure -> "https"
//	not in set, secure   -> "http" (downgrade)
//	not in set, insecure -> continue
func (a *App) schemeFor(controller string, secure bool) string {
	if a.httpsEnforced {
		if secure {
			return ""
		}
		return "https"
	}

	if _, enforced := a.httpsControllers[controller]; enforced {
		if secure {
			return ""
		}
		return "https"
	}

	if secure {
		return "http"
	}
	return ""
}

// schemeURL rebuilds the request URL under the given scheme, dropping any
// explicit port so the redirect lands on the scheme's default.
func schemeURL(r *http.Request, scheme string) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return scheme + "://" + host + r.URL.RequestURI()
}

// lookupController resolves a controller factory module-first, then globally.
func (a *App) lookupController(module, name string) Factory {
	if module != "" {
		if reg, ok := a.moduleControllers[module]; ok {
			if factory, ok := reg[name]; ok {
				return factory
			}
		}
		// Module dispatch does not fall through to the global registry for
		// regular controllers; only the Error controller does (see errorController).
		return nil
	}
	return a.controllers[name]
}

// errorController resolves the conventional Error controller, module-first
// with a global fallback.
func (a *App) errorController(module string) Factory {
	if module != "" {
		if reg, ok := a.moduleControllers[module]; ok {
			if factory, ok := reg[ErrorControllerName]; ok {
				return factory
			}
		}
	}
	return a.controllers[ErrorControllerName]
}
