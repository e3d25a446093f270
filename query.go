package weave

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iov-one/solquad/errors"
)

// Query modifiers are appended to a route after "?". An empty modifier
// loads a single key, "prefix" loads every key starting with the data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key-value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// QueryHandler serves reads of a bucket or an index for the given modifier.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister is a function that adds some handlers
// to this router
type QueryRegister func(QueryRouter)

// QueryRouter maps routes such as "/escrows" or "/projects/pool" to the
// handler serving them.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given route. It panics if the route
// is not absolute, carries a modifier or was already registered.
func (r QueryRouter) Register(route string, h QueryHandler) {
	if !strings.HasPrefix(route, "/") || strings.Contains(route, "?") {
		panic(fmt.Sprintf("invalid query route: %q", route))
	}
	if _, ok := r.routes[route]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", route))
	}
	r.routes[route] = h
}

// Handler returns the registered Handler for this route.
// Returns nil if no handler is registered.
func (r QueryRouter) Handler(route string) QueryHandler {
	return r.routes[route]
}

// Routes returns all registered routes in lexical order.
func (r QueryRouter) Routes() []string {
	routes := make([]string, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Resolve parses a raw ABCI query path and returns the handler and the
// modifier to call it with.
func (r QueryRouter) Resolve(path string) (QueryHandler, string, error) {
	route, mod, err := ParseQueryPath(path)
	if err != nil {
		return nil, "", err
	}
	h := r.Handler(route)
	if h == nil {
		return nil, "", errors.Wrapf(errors.ErrNotFound,
			"unexpected query path %q, known routes: %s", path, strings.Join(r.Routes(), ", "))
	}
	return h, mod, nil
}

// ParseQueryPath splits a query path into the route and the modifier
// following "?". Unknown modifiers are rejected.
func ParseQueryPath(path string) (route, mod string, err error) {
	route = path
	if chunks := strings.SplitN(path, "?", 2); len(chunks) == 2 {
		route, mod = chunks[0], chunks[1]
	}
	switch mod {
	case KeyQueryMod, PrefixQueryMod:
		return route, mod, nil
	default:
		return "", "", errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}
}
