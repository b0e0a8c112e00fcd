package http

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var specYAML []byte

// rawSpec returns the embedded OpenAPI document.
func rawSpec() ([]byte, error) {
	return specYAML, nil
}

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	data, err := rawSpec()
	if err != nil {
		return nil, err
	}
	swagger, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	return swagger, nil
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse defines model for ListResponse.
type ListResponse struct {
	Automata []string `json:"automata"`
}

// QueryRequest defines model for QueryRequest.
type QueryRequest struct {
	Input *string `json:"input,omitempty"`
}

// AcceptsResponse defines model for AcceptsResponse.
type AcceptsResponse struct {
	Automaton string `json:"automaton"`
	Input     string `json:"input"`
	Accepted  bool   `json:"accepted"`
}

// MaxCopiesResponse defines model for MaxCopiesResponse.
type MaxCopiesResponse struct {
	Automaton string `json:"automaton"`
	Input     string `json:"input"`
	MaxCopies int    `json:"max_copies"`
}

// DeterministicResponse defines model for DeterministicResponse.
type DeterministicResponse struct {
	Automaton     string `json:"automaton"`
	Deterministic bool   `json:"deterministic"`
}

// TraceStep defines model for TraceStep.
type TraceStep struct {
	Symbol string   `json:"symbol"`
	Active []string `json:"active"`
}

// TraceResponse defines model for TraceResponse.
type TraceResponse struct {
	Automaton string      `json:"automaton"`
	Input     string      `json:"input"`
	Initial   []string    `json:"initial"`
	Steps     []TraceStep `json:"steps"`
	Halted    bool        `json:"halted"`
	HaltedAt  *int        `json:"halted_at,omitempty"`
	Accepted  bool        `json:"accepted"`
	MaxCopies int         `json:"max_copies"`
}

// Definition defines model for Definition.
type Definition = domain.Definition

// InputParams holds the optional input query parameter shared by query routes.
type InputParams struct {
	Input *string `form:"input,omitempty" json:"input,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (GET /automata)
	ListAutomata(w http.ResponseWriter, r *http.Request)
	// (GET /automata/{name})
	GetAutomaton(w http.ResponseWriter, r *http.Request, name string)
	// (PUT /automata/{name})
	PutAutomaton(w http.ResponseWriter, r *http.Request, name string)
	// (GET /automata/{name}/accepts)
	GetAccepts(w http.ResponseWriter, r *http.Request, name string, params InputParams)
	// (POST /automata/{name}/accepts)
	PostAccepts(w http.ResponseWriter, r *http.Request, name string)
	// (GET /automata/{name}/max-copies)
	GetMaxCopies(w http.ResponseWriter, r *http.Request, name string, params InputParams)
	// (GET /automata/{name}/deterministic)
	GetDeterministic(w http.ResponseWriter, r *http.Request, name string)
	// (GET /automata/{name}/trace)
	GetTrace(w http.ResponseWriter, r *http.Request, name string, params InputParams)
	// (GET /automata/{name}/graph)
	GetGraph(w http.ResponseWriter, r *http.Request, name string, params InputParams)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) bindName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "name", chi.URLParam(r, "name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter name: %w", err))
		return "", false
	}
	return name, true
}

func (siw *ServerInterfaceWrapper) bindInput(w http.ResponseWriter, r *http.Request) (InputParams, bool) {
	var params InputParams
	err := runtime.BindQueryParameter("form", true, false, "input", r.URL.Query(), &params.Input)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, fmt.Errorf("invalid format for parameter input: %w", err))
		return params, false
	}
	return params, true
}

func (siw *ServerInterfaceWrapper) withName(fn func(w http.ResponseWriter, r *http.Request, name string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := siw.bindName(w, r)
		if !ok {
			return
		}
		fn(w, r, name)
	}
}

func (siw *ServerInterfaceWrapper) withNameAndInput(fn func(w http.ResponseWriter, r *http.Request, name string, params InputParams)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := siw.bindName(w, r)
		if !ok {
			return
		}
		params, ok := siw.bindInput(w, r)
		if !ok {
			return
		}
		fn(w, r, name, params)
	}
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		},
	}

	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Get("/automata", si.ListAutomata)
	r.Route("/automata/{name}", func(r chi.Router) {
		r.Get("/", wrapper.withName(si.GetAutomaton))
		r.Put("/", wrapper.withName(si.PutAutomaton))
		r.Get("/accepts", wrapper.withNameAndInput(si.GetAccepts))
		r.Post("/accepts", wrapper.withName(si.PostAccepts))
		r.Get("/max-copies", wrapper.withNameAndInput(si.GetMaxCopies))
		r.Get("/deterministic", wrapper.withName(si.GetDeterministic))
		r.Get("/trace", wrapper.withNameAndInput(si.GetTrace))
		r.Get("/graph", wrapper.withNameAndInput(si.GetGraph))
	})
	return r
}
