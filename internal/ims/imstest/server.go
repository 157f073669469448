// Package imstest provides an in-memory IMS API and token endpoint for tests.
package imstest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"ims-shopify/internal/ims"
)

const (
	ClientID     = "test-client"
	ClientSecret = "test-secret"
	APIKey       = "test-api-key"
	AccessToken  = "test-token"
)

type Call struct {
	Method string
	Path   string
	Body   map[string]any
}

// Server fakes the IMS auth and REST endpoints under /oauth2/ and /2/.
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	calls          []Call
	nextID         int
	FailToken      bool
	DataExtensions []ims.DataExtension
	Sellers        []ims.Seller
	// FailPaths maps "METHOD path" to a status code to answer with.
	FailPaths map[string]int
}

func NewServer() *Server {
	s := &Server{nextID: 100, FailPaths: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) AuthURL() string { return s.URL + "/oauth2/" }
func (s *Server) APIURL() string  { return s.URL + "/2/" }

func (s *Server) Credentials() ims.Credentials {
	return ims.Credentials{
		ClientID:     ClientID,
		ClientSecret: ClientSecret,
		APIKey:       APIKey,
		AuthURL:      s.AuthURL(),
		APIURL:       s.APIURL(),
	}
}

// Calls returns the API calls received, excluding the token exchange.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo counts calls matching method and path.
func (s *Server) CallsTo(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) Extensions() []ims.DataExtension {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ims.DataExtension(nil), s.DataExtensions...)
}

func (s *Server) SellerDocument(id ims.ID) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range s.Sellers {
		if sl.ID == id {
			return sl.DataDocument
		}
	}
	return nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/oauth2/token" {
		s.token(w, r)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+AccessToken || r.Header.Get("x-api-key") != APIKey {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/2/")
	var body map[string]any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: r.Method, Path: path, Body: body})

	if code, ok := s.FailPaths[r.Method+" "+path]; ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"message":"forced failure"}`))
		return
	}

	switch {
	case path == "dataExtensions" && r.Method == http.MethodGet:
		writeJSON(w, s.DataExtensions)
	case path == "dataExtensions" && r.Method == http.MethodPost:
		ext := ims.DataExtension{
			ID:                ims.ID(fmt.Sprint(s.nextID)),
			EntityName:        str(body["entityName"]),
			DataExtensionName: str(body["dataExtensionName"]),
			DataSchema:        str(body["dataSchema"]),
		}
		s.nextID++
		s.DataExtensions = append(s.DataExtensions, ext)
		writeJSON(w, ext)
	case strings.HasPrefix(path, "dataExtensions/") && r.Method == http.MethodPatch:
		id := ims.ID(strings.TrimPrefix(path, "dataExtensions/"))
		for i := range s.DataExtensions {
			if s.DataExtensions[i].ID == id {
				s.DataExtensions[i].DataSchema = str(body["dataSchema"])
				writeJSON(w, s.DataExtensions[i])
				return
			}
		}
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	case path == "sellers" && r.Method == http.MethodGet:
		writeJSON(w, s.Sellers)
	case strings.HasPrefix(path, "sellers/") && r.Method == http.MethodPatch:
		id := ims.ID(strings.TrimPrefix(path, "sellers/"))
		for i := range s.Sellers {
			if s.Sellers[i].ID == id {
				doc := str(body["dataDocument"])
				s.Sellers[i].DataDocument = &doc
				writeJSON(w, s.Sellers[i])
				return
			}
		}
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	default:
		http.Error(w, `{"message":"no route"}`, http.StatusNotFound)
	}
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.FailToken
	s.mu.Unlock()

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte(ClientID+":"+ClientSecret))
	_ = r.ParseForm()
	if fail || r.Header.Get("Authorization") != want || r.PostForm.Get("grant_type") != "client_credentials" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		return
	}
	writeJSON(w, map[string]any{"access_token": AccessToken, "token_type": "Bearer", "expires_in": 3600})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// Document returns a pointer to doc, for building Seller fixtures.
func Document(doc string) *string { return &doc }
