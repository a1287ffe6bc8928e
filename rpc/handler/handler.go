// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - http handlers bridging the JSON RPC services onto
// the HTTPS listener, plus status endpoints for operators
package handler

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/counter"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/mode"
)

// Handler - the endpoints the HTTPS listener mounts
type Handler interface {
	RPC(w http.ResponseWriter, r *http.Request)
	Details(w http.ResponseWriter, r *http.Request)
	Scopes(w http.ResponseWriter, r *http.Request)
	Root(w http.ResponseWriter, r *http.Request)
	SetAllow(allow map[string][]*net.IPNet)
}

// type to allow rpc system to interface to http request
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *InternalConnection) Close() error {
	return nil
}

// gauge of in-flight http requests, shared by every endpoint
var connectionCount counter.Counter

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	ledger             *ledger.Registry
	start              time.Time
	version            string
	maximumConnections uint64
	allow              map[string][]*net.IPNet
}

// New - create the handler set for the HTTPS listener
func New(
	log *logger.L,
	server *rpc.Server,
	ledger *ledger.Registry,
	start time.Time,
	version string,
	maximumConnections uint64,
) Handler {
	return &httpHandler{
		log:                log,
		server:             server,
		ledger:             ledger,
		start:              start,
		version:            version,
		maximumConnections: maximumConnections,
	}
}

// SetAllow - set the endpoint access lists
func (s *httpHandler) SetAllow(allow map[string][]*net.IPNet) {
	s.allow = allow
}

// Root - this matches anything not matched and returns error
func (s *httpHandler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (s *httpHandler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if connectionCount.Increment() > s.maximumConnections {
		connectionCount.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer connectionCount.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&InternalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := s.server.ServeRequest(serverCodec)
	if nil != err {
		sendInternalServerError(w)
		return
	}
}

// Details - GET summary of the daemon state
// (restricted to the "details" allow list)
func (s *httpHandler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("details", r) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if connectionCount.Increment() > s.maximumConnections {
		connectionCount.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer connectionCount.Decrement()

	type theReply struct {
		Mode        string `json:"mode"`
		Scopes      int    `json:"scopes"`
		Connections uint64 `json:"connections"`
		Version     string `json:"version"`
		Uptime      string `json:"uptime"`
	}

	reply := theReply{
		Mode:        mode.String(),
		Connections: connectionCount.Uint64(),
		Version:     s.version,
		Uptime:      time.Since(s.start).String(),
	}
	if nil != s.ledger {
		reply.Scopes = len(s.ledger.Scopes())
	}

	sendReply(w, reply)
}

// Scopes - GET the scopes with an open ledger
// (restricted to the "scopes" allow list)
func (s *httpHandler) Scopes(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("scopes", r) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if connectionCount.Increment() > s.maximumConnections {
		connectionCount.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer connectionCount.Decrement()

	type theReply struct {
		Scopes []ident.ScopeID `json:"scopes"`
		Count  int             `json:"count"`
	}

	reply := theReply{
		Scopes: []ident.ScopeID{},
	}
	if nil != s.ledger {
		reply.Scopes = s.ledger.Scopes()
	}
	reply.Count = len(reply.Scopes)

	sendReply(w, reply)
}

// match the remote address against one endpoint's allow list
func (s *httpHandler) isAllowed(endpoint string, r *http.Request) bool {
	last := strings.LastIndex(r.RemoteAddr, ":")
	if last < 0 {
		return false
	}
	addr := strings.Trim(r.RemoteAddr[:last], "[]")

	ip := net.ParseIP(addr)
	if nil == ip {
		return false
	}

	for _, cidr := range s.allow[endpoint] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
