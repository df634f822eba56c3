package modkit

import (
	"net/http"
	"reflect"

	"recordkeeper/internal/modkit/httpkit"
)

// Module is what the API mounts: routes plus ports other modules consume
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	// Ports is a struct of exported port fields, or nil
	Ports() any
}

// Option adjusts a module built with New
type Option func(*routed)

// WithPrefix overrides the default mount prefix
func WithPrefix(p string) Option { return func(m *routed) { m.prefix = p } }

// WithMiddlewares runs mw, in order, in front of the module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(m *routed) { m.mw = append(m.mw, mw...) }
}

type routed struct {
	name, prefix string
	mw           []func(http.Handler) http.Handler
	ports        any
	register     func(httpkit.Router)
}

// New builds a module mounting register under prefix
func New(name, prefix string, ports any, register func(httpkit.Router), opts ...Option) Module {
	m := &routed{name: name, prefix: prefix, ports: ports, register: register}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *routed) Name() string { return m.name }
func (m *routed) Ports() any   { return m.ports }

func (m *routed) MountRoutes(r httpkit.Router) {
	if m.register == nil {
		return
	}
	r.Route(m.prefix, func(sub httpkit.Router) {
		if len(m.mw) > 0 {
			sub.Use(m.mw...)
		}
		m.register(sub)
	})
}

// PortsOf finds a T in m's ports: the ports value itself, or its first exported field holding one
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for startup wiring; a missing port panics
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("modkit: module " + m.Name() + " has no port of type " + reflect.TypeFor[T]().String())
	}
	return v
}
