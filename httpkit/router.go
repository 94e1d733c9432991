package httpkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler type mounted everywhere
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the minimal surface handlers mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// URLParam pulls a path parameter out of the request
func URLParam(r *http.Request, key string) string { return chi.URLParam(r, key) }

// chiRoot adapts *chi.Mux to Router
type chiRoot struct{ m *chi.Mux }

// chiSub adapts a nested chi.Router
type chiSub struct{ r chi.Router }

func toStd(h Handler) http.HandlerFunc { return http.HandlerFunc(h) }

// AdaptChi adapts a *chi.Mux to a Router
func AdaptChi(m *chi.Mux) Router { return chiRoot{m: m} }

func (c chiRoot) Get(p string, h Handler)     { c.m.Method(http.MethodGet, p, toStd(h)) }
func (c chiRoot) Post(p string, h Handler)    { c.m.Method(http.MethodPost, p, toStd(h)) }
func (c chiRoot) Put(p string, h Handler)     { c.m.Method(http.MethodPut, p, toStd(h)) }
func (c chiRoot) Patch(p string, h Handler)   { c.m.Method(http.MethodPatch, p, toStd(h)) }
func (c chiRoot) Delete(p string, h Handler)  { c.m.Method(http.MethodDelete, p, toStd(h)) }
func (c chiRoot) Head(p string, h Handler)    { c.m.Method(http.MethodHead, p, toStd(h)) }
func (c chiRoot) Options(p string, h Handler) { c.m.Method(http.MethodOptions, p, toStd(h)) }

func (c chiRoot) Handle(p string, h http.Handler)           { c.m.Handle(p, h) }
func (c chiRoot) Use(mw ...func(http.Handler) http.Handler) { c.m.Use(mw...) }
func (c chiRoot) Group(fn func(Router)) {
	c.m.Group(func(sub chi.Router) { fn(chiSub{r: sub}) })
}

func (c chiRoot) Route(pattern string, fn func(Router)) {
	c.m.Route(pattern, func(sub chi.Router) { fn(chiSub{r: sub}) })
}
func (c chiRoot) Mux() http.Handler { return c.m }

func (c chiSub) Get(p string, h Handler)     { c.r.Method(http.MethodGet, p, toStd(h)) }
func (c chiSub) Post(p string, h Handler)    { c.r.Method(http.MethodPost, p, toStd(h)) }
func (c chiSub) Put(p string, h Handler)     { c.r.Method(http.MethodPut, p, toStd(h)) }
func (c chiSub) Patch(p string, h Handler)   { c.r.Method(http.MethodPatch, p, toStd(h)) }
func (c chiSub) Delete(p string, h Handler)  { c.r.Method(http.MethodDelete, p, toStd(h)) }
func (c chiSub) Head(p string, h Handler)    { c.r.Method(http.MethodHead, p, toStd(h)) }
func (c chiSub) Options(p string, h Handler) { c.r.Method(http.MethodOptions, p, toStd(h)) }

func (c chiSub) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiSub) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }
func (c chiSub) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiSub{r: sub}) })
}

func (c chiSub) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiSub{r: sub}) })
}
func (c chiSub) Mux() http.Handler { return c.r }
