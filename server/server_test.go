/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Thu Oct 15 11:02:09 2026 mstenber
 * Last modified: Sat Oct 17 12:34:12 2026 mstenber
 * Edit time:     31 min
 *
 */

package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fingon/go-bookshelf/library"
	"github.com/stvp/assert"
	"github.com/twitchtv/twirp"
)

type call struct {
	method, path, contentType, body string
}

func do(t *testing.T, url string, c call) (int, []byte) {
	req, err := http.NewRequest(c.method, url+c.path, strings.NewReader(c.body))
	assert.Nil(t, err)
	req.Header.Set("Content-Type", c.contentType)
	resp, err := http.DefaultClient.Do(req)
	assert.Nil(t, err)
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	assert.Nil(t, err)
	return resp.StatusCode, b
}

func post(method, body string) call {
	return call{"POST", PathPrefix + method, "application/json", body}
}

func TestServer(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(&Server{Library: library.NewDefault()})
	defer ts.Close()

	for _, test := range []struct {
		c      call
		status int
		result string
	}{{post("Search", `{"title":"The Hobbit"}`), 200, `{"found":true}`},
		{post("Search", `{"title":" Dune "}`), 200, `{"found":false}`},
		{post("GetBook", `{"title":"Becoming"}`), 200,
			`{"book":{"title":"Becoming","author":"Michelle Obama","year":2018,"genre":"Biography"}}`},
		{post("GetStats", `{}`), 200, `{"books":8,"depth":4,"categories":2,"shelves":4,"oldest":1887,"newest":2018}`},
		{call{"POST", PathPrefix + "ListSorted", "application/json; charset=utf-8", "{}"}, 200,
			`{"titles":["A Brief History of Time","Becoming","Gone Girl","Harry Potter","Sherlock Holmes","Steve Jobs","The Hobbit","The Selfish Gene"]}`},
	} {
		status, b := do(t, ts.URL, test.c)
		assert.Equal(t, status, test.status, test.c)
		assert.Equal(t, string(b), test.result)
	}
}

func TestServerErrors(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(&Server{Library: library.NewDefault()})
	defer ts.Close()

	for _, test := range []struct {
		c    call
		code twirp.ErrorCode
	}{{post("Search", `{"title":"  "}`), twirp.InvalidArgument},
		{post("GetBook", `{"title":""}`), twirp.InvalidArgument},
		{post("GetBook", `{"title":"Dune"}`), twirp.NotFound},
		{post("GetBook", `{"title":`), twirp.InvalidArgument},
		{post("GetBook", ``), twirp.InvalidArgument},
		{post("Delete", `{}`), twirp.BadRoute},
		{call{"GET", PathPrefix + "Search", "application/json", ""}, twirp.BadRoute},
		{call{"POST", PathPrefix + "Search", "application/protobuf", ""}, twirp.BadRoute},
		{call{"POST", "/twirp/other.Service/Search", "application/json", "{}"}, twirp.BadRoute},
	} {
		status, b := do(t, ts.URL, test.c)
		var ej ErrorJSON
		assert.Nil(t, json.Unmarshal(b, &ej), string(b))
		assert.Equal(t, ej.Code, string(test.code), test.c)
		assert.Equal(t, status, twirp.ServerHTTPStatusFromErrorCode(test.code))
	}

	status, b := do(t, ts.URL, post("Search", `{"title":""}`))
	assert.Equal(t, status, 400)
	var ej ErrorJSON
	assert.Nil(t, json.Unmarshal(b, &ej))
	assert.Equal(t, ej.Msg, "please enter a book title")
	assert.Equal(t, ej.Meta["argument"], "title")
}

func TestServerInit(t *testing.T) {
	t.Parallel()
	lib := library.NewDefault()
	s := Server{Address: "127.0.0.1:0", Library: lib}.Init()
	defer s.Close()
	url := fmt.Sprintf("http://%s", s.Addr())

	status, _ := do(t, url, post("GetBook", `{"title":"Dune"}`))
	assert.Equal(t, status, 404)

	assert.Nil(t, lib.Add(library.Book{Title: "Dune"}, "Fantasy"))
	status, b := do(t, url, post("Search", `{"title":"Dune"}`))
	assert.Equal(t, status, 200)
	assert.Equal(t, string(b), `{"found":true}`)
}
