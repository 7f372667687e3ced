/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Thu Oct 15 09:38:35 2026 mstenber
 * Last modified: Sat Oct 17 12:20:44 2026 mstenber
 * Edit time:     88 min
 *
 */

// server package provides lookup service for a library. It speaks
// the twirp JSON protocol, so any twirp client for the
// bookshelf.Library service can use it:
//
//	POST /twirp/bookshelf.Library/<Method>
//	Content-Type: application/json
package server

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/fingon/go-bookshelf/library"
	"github.com/fingon/go-bookshelf/mlog"
	"github.com/pkg/errors"
	"github.com/twitchtv/twirp"
)

const (
	PathPrefix = "/twirp/bookshelf.Library/"

	contentTypeJSON = "application/json"
	maxRequestSize  = 1 << 20
)

type Server struct {
	Address    string
	Library    *library.Library
	listener   net.Listener
	httpServer *http.Server
}

// Init starts serving at Address in the background.
func (self Server) Init() *Server {
	lis, err := net.Listen("tcp", self.Address)
	if err != nil {
		log.Panic(err)
	}
	mlog.Printf("Server at %s", lis.Addr())
	self.listener = lis
	self.httpServer = &http.Server{Handler: &self}
	go func() {
		self.httpServer.Serve(lis)
	}()
	return &self
}

// Addr is the address actually listened at (Address may have port 0).
func (self *Server) Addr() string {
	return self.listener.Addr().String()
}

func (self *Server) Close() {
	self.httpServer.Close()
}

type SearchRequest struct {
	Title string `json:"title"`
}

type SearchResponse struct {
	Found bool `json:"found"`
}

type GetBookRequest struct {
	Title string `json:"title"`
}

type GetBookResponse struct {
	Book *library.Book `json:"book"`
}

type ListSortedRequest struct {
}

type ListSortedResponse struct {
	Titles []string `json:"titles"`
}

type GetStatsRequest struct {
}

func toTwirpError(err error) twirp.Error {
	if terr, ok := err.(twirp.Error); ok {
		return terr
	}
	switch errors.Cause(err) {
	case library.ErrEmptyQuery:
		return twirp.NewError(twirp.InvalidArgument, err.Error()).
			WithMeta("argument", "title")
	case library.ErrNotFound:
		return twirp.NotFoundError(err.Error())
	}
	return twirp.InternalErrorWith(err)
}

func (self *Server) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	found, err := self.Library.Search(req.Title)
	if err != nil {
		return nil, toTwirpError(err)
	}
	return &SearchResponse{Found: found}, nil
}

func (self *Server) GetBook(ctx context.Context, req *GetBookRequest) (*GetBookResponse, error) {
	b, err := self.Library.Lookup(req.Title)
	if err != nil {
		return nil, toTwirpError(err)
	}
	return &GetBookResponse{Book: b}, nil
}

func (self *Server) ListSorted(ctx context.Context, req *ListSortedRequest) (*ListSortedResponse, error) {
	titles := self.Library.Sorted()
	if titles == nil {
		titles = []string{}
	}
	return &ListSortedResponse{Titles: titles}, nil
}

func (self *Server) GetStats(ctx context.Context, req *GetStatsRequest) (*library.Stats, error) {
	stats := self.Library.Stats()
	return &stats, nil
}

// handler decodes the request body and calls the method.
type handler func(ctx context.Context, body *json.Decoder) (interface{}, error)

func decodeRequest(body *json.Decoder, req interface{}) error {
	if err := body.Decode(req); err != nil {
		return twirp.NewError(twirp.InvalidArgument,
			"failed to parse request json: "+err.Error())
	}
	return nil
}

func (self *Server) route(method string) handler {
	switch method {
	case "Search":
		return func(ctx context.Context, body *json.Decoder) (interface{}, error) {
			var req SearchRequest
			if err := decodeRequest(body, &req); err != nil {
				return nil, err
			}
			return self.Search(ctx, &req)
		}
	case "GetBook":
		return func(ctx context.Context, body *json.Decoder) (interface{}, error) {
			var req GetBookRequest
			if err := decodeRequest(body, &req); err != nil {
				return nil, err
			}
			return self.GetBook(ctx, &req)
		}
	case "ListSorted":
		return func(ctx context.Context, body *json.Decoder) (interface{}, error) {
			var req ListSortedRequest
			if err := decodeRequest(body, &req); err != nil {
				return nil, err
			}
			return self.ListSorted(ctx, &req)
		}
	case "GetStats":
		return func(ctx context.Context, body *json.Decoder) (interface{}, error) {
			var req GetStatsRequest
			if err := decodeRequest(body, &req); err != nil {
				return nil, err
			}
			return self.GetStats(ctx, &req)
		}
	}
	return nil
}

func badRoute(msg string, r *http.Request) twirp.Error {
	return twirp.NewError(twirp.BadRoute, msg).
		WithMeta("twirp_invalid_route", r.Method+" "+r.URL.Path)
}

func (self *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mlog.Printf2("server/server", "ServeHTTP %s %s", r.Method, r.URL.Path)
	if r.Method != "POST" {
		writeError(w, badRoute("unsupported method "+r.Method, r))
		return
	}
	ct := r.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	if strings.TrimSpace(strings.ToLower(ct)) != contentTypeJSON {
		writeError(w, badRoute("unexpected Content-Type: "+ct, r))
		return
	}
	if !strings.HasPrefix(r.URL.Path, PathPrefix) {
		writeError(w, badRoute("no handler for path "+r.URL.Path, r))
		return
	}
	h := self.route(strings.TrimPrefix(r.URL.Path, PathPrefix))
	if h == nil {
		writeError(w, badRoute("no handler for path "+r.URL.Path, r))
		return
	}
	body := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize))
	res, err := h(r.Context(), body)
	if err != nil {
		writeError(w, toTwirpError(err))
		return
	}
	b, err := json.Marshal(res)
	if err != nil {
		writeError(w, twirp.InternalErrorWith(err))
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ErrorJSON is the wire form of twirp.Error.
type ErrorJSON struct {
	Code string            `json:"code"`
	Msg  string            `json:"msg"`
	Meta map[string]string `json:"meta,omitempty"`
}

func writeError(w http.ResponseWriter, terr twirp.Error) {
	mlog.Printf2("server/server", " error %v", terr)
	b, err := json.Marshal(ErrorJSON{Code: string(terr.Code()),
		Msg: terr.Msg(), Meta: terr.MetaMap()})
	if err != nil {
		log.Panic(err)
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(terr.Code()))
	w.Write(b)
}
