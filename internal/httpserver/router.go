// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package httpserver

import "strings"

// Handler answers one request. A route that streams its response body
// instead of returning a materialized Response registers a StreamHandler,
// which returns (driver, contentType) — see stream.go.
type Handler func(req *Request) *Response

// DynamicHandler answers a request that may resolve to either a
// materialized Response or a streamed one, depending on the parsed
// request body (e.g. chat completions: tools present forces a
// materialized response regardless of the client's `stream` flag).
// Exactly one of resp or drive must be non-nil.
type DynamicHandler func(req *Request) (resp *Response, drive StreamDriver, contentType string)

// Router dispatches (method, path) pairs to registered Handlers, and owns
// the cross-cutting behavior every route gets for free: CORS preflight,
// HEAD mirroring of GET, and a plain-text 404 default.
//
// # Thread Safety
//
// Handle must not be called concurrently with ServeRequest; routes are
// expected to be registered once at startup before the listener starts
// accepting connections.
type Router struct {
	routes   map[string]map[string]Handler // path -> method -> handler
	streams  map[string]map[string]StreamHandler
	dynamic  map[string]map[string]DynamicHandler
	prefixes []prefixRoute
}

// prefixRoute is a fallback route matched by longest-prefix when no
// exact path is registered, used for the "/v1/models/{id}"-shaped
// routes that carry a path parameter the flat route map cannot express.
type prefixRoute struct {
	method string
	prefix string
	h      Handler
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{
		routes:  make(map[string]map[string]Handler),
		streams: make(map[string]map[string]StreamHandler),
		dynamic: make(map[string]map[string]DynamicHandler),
	}
}

// Handle registers a Handler for an exact method and path. Path must
// already be in normalized form (see NormalizePath); callers typically
// register literal paths like "/v1/chat/completions".
func (rt *Router) Handle(method, path string, h Handler) {
	method = strings.ToUpper(method)
	if rt.routes[path] == nil {
		rt.routes[path] = make(map[string]Handler)
	}
	rt.routes[path][method] = h
}

// HandlePrefix registers a Handler for every path under prefix (e.g.
// "/v1/models/" matches "/v1/models/apple.local"). h receives the
// full request; it is responsible for extracting whatever comes after
// the prefix. Prefix routes are only consulted when no exact route
// matches, and the longest matching prefix wins.
func (rt *Router) HandlePrefix(method, prefix string, h Handler) {
	rt.prefixes = append(rt.prefixes, prefixRoute{method: strings.ToUpper(method), prefix: prefix, h: h})
}

// matchPrefix returns the handler for the longest registered prefix
// route matching method and path, or nil if none match.
func (rt *Router) matchPrefix(method, path string) Handler {
	var best Handler
	bestLen := -1
	for _, p := range rt.prefixes {
		if p.method != method {
			continue
		}
		if strings.HasPrefix(path, p.prefix) && len(p.prefix) > bestLen {
			best = p.h
			bestLen = len(p.prefix)
		}
	}
	return best
}

// HandleStream registers a StreamHandler, for routes that may emit SSE or
// NDJSON instead of a single materialized body.
func (rt *Router) HandleStream(method, path string, h StreamHandler) {
	method = strings.ToUpper(method)
	if rt.streams[path] == nil {
		rt.streams[path] = make(map[string]StreamHandler)
	}
	rt.streams[path][method] = h
}

// HandleDynamic registers a DynamicHandler, for routes where the choice
// between a materialized and a streamed response depends on the parsed
// request body rather than on the route alone.
func (rt *Router) HandleDynamic(method, path string, h DynamicHandler) {
	method = strings.ToUpper(method)
	if rt.dynamic[path] == nil {
		rt.dynamic[path] = make(map[string]DynamicHandler)
	}
	rt.dynamic[path][method] = h
}

// ServeRequest resolves req against the registered routes and returns the
// Response to write. If the route is registered as a StreamHandler, drive
// is non-nil and resp is nil; the caller must invoke drive against an
// Emitter instead of serializing resp.
func (rt *Router) ServeRequest(req *Request) (resp *Response, drive StreamDriver, streamContentType string) {
	if req.Method == "OPTIONS" {
		return rt.preflight(), nil, ""
	}

	methods, ok := rt.routes[req.Path]
	streamMethods := rt.streams[req.Path]
	dynamicMethods := rt.dynamic[req.Path]

	if req.Method == "HEAD" {
		if h, ok2 := methods["GET"]; ok2 {
			r := h(req)
			r.Body = nil
			return r, nil, ""
		}
		if _, ok2 := streamMethods["GET"]; ok2 {
			// Streaming GET routes do not support HEAD: there is no
			// materialized body to mirror headers from.
			return rt.notFound(), nil, ""
		}
		if h := rt.matchPrefix("GET", req.Path); h != nil {
			r := h(req)
			r.Body = nil
			return r, nil, ""
		}
	}

	if ok {
		if h, ok2 := methods[req.Method]; ok2 {
			return h(req), nil, ""
		}
	}
	if streamMethods != nil {
		if h, ok2 := streamMethods[req.Method]; ok2 {
			d, ct := h(req)
			return nil, d, ct
		}
	}
	if dynamicMethods != nil {
		if h, ok2 := dynamicMethods[req.Method]; ok2 {
			return h(req)
		}
	}
	if h := rt.matchPrefix(req.Method, req.Path); h != nil {
		return h(req), nil, ""
	}

	return rt.notFound(), nil, ""
}

func (rt *Router) preflight() *Response {
	return &Response{
		Status: 204,
		Headers: map[string]string{
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS, HEAD",
			"Access-Control-Allow-Headers": "Content-Type, Authorization, Accept",
			"Access-Control-Max-Age":       "600",
		},
		Body: nil,
	}
}

// notFound is the default for any route with no registered handler.
// Unlike the OpenAI-shaped 404 used for an unknown model id (see
// internal/handlers), an unrecognized route gets a plain-text body,
// per spec.
func (rt *Router) notFound() *Response {
	return NewText(404, "not found")
}
