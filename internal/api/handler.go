package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/eugenenazirov/messaging-config/internal/channel"
	"github.com/eugenenazirov/messaging-config/internal/provider"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes a read-only view of a configuration provider over HTTP.
type Handler struct {
	provider provider.Provider

	clock     func() time.Time
	startedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler serving p.
func NewHandler(p provider.Provider, opts ...HandlerOption) *Handler {
	h := &Handler{
		provider: p,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
		StartedAt: h.startedAt,
		Sources:   len(h.provider.ConfigSources()),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	_ = r
	names := slices.Sorted(h.provider.PropertyNames())
	writeJSON(w, http.StatusOK, propertiesResponse{Properties: names, Count: len(names)})
}

func (h *Handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	value, ok, err := provider.OptionalValue[string](h.provider, name)
	if err != nil {
		if errors.Is(err, provider.ErrTypeMismatch) {
			writeError(w, http.StatusUnprocessableEntity, "Type mismatch", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Property not found", name)
		return
	}
	writeJSON(w, http.StatusOK, propertyResponse{Name: name, Value: value})
}

func (h *Handler) handleListSources(w http.ResponseWriter, r *http.Request) {
	_ = r
	sources := h.provider.ConfigSources()
	resp := make([]sourceResponse, 0, len(sources))
	for _, src := range sources {
		resp = append(resp, sourceResponse{
			Name:       src.Name(),
			Ordinal:    src.Ordinal(),
			Properties: len(src.PropertyNames()),
		})
	}
	writeJSON(w, http.StatusOK, sourcesResponse{Sources: resp})
}

func (h *Handler) handleChannels(w http.ResponseWriter, r *http.Request) {
	_ = r
	topo, err := channel.Discover(h.provider)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := channelsResponse{
		Channels:   make([]channelResponse, 0, len(topo.Channels)),
		Connectors: make([]connectorResponse, 0, len(topo.Connectors)),
		Problems:   problemList(topo.Validate()),
	}
	for _, ch := range topo.Channels {
		cfg := topo.Config(ch)
		attrs := make(map[string]string)
		for attr := range cfg.PropertyNames() {
			value, ok, err := provider.OptionalValue[string](cfg, attr)
			if err != nil {
				writeInternalError(w, err)
				return
			}
			if ok {
				attrs[attr] = value
			}
		}
		resp.Channels = append(resp.Channels, channelResponse{
			Name:       ch.Name,
			Direction:  string(ch.Direction),
			Connector:  ch.Connector,
			Attributes: attrs,
		})
	}
	for _, conn := range topo.Connectors {
		resp.Connectors = append(resp.Connectors, connectorResponse{Name: conn.Name, Attributes: conn.Attributes})
	}
	writeJSON(w, http.StatusOK, resp)
}

func problemList(err error) []string {
	if err == nil {
		return []string{}
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		out := make([]string, 0, len(errs))
		for _, e := range errs {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	StartedAt time.Time `json:"startedAt"`
	Sources   int       `json:"sources"`
}

type propertiesResponse struct {
	Properties []string `json:"properties"`
	Count      int      `json:"count"`
}

type propertyResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type sourceResponse struct {
	Name       string `json:"name"`
	Ordinal    int    `json:"ordinal"`
	Properties int    `json:"properties"`
}

type sourcesResponse struct {
	Sources []sourceResponse `json:"sources"`
}

type channelResponse struct {
	Name       string            `json:"name"`
	Direction  string            `json:"direction"`
	Connector  string            `json:"connector,omitempty"`
	Attributes map[string]string `json:"attributes"`
}

type connectorResponse struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

type channelsResponse struct {
	Channels   []channelResponse   `json:"channels"`
	Connectors []connectorResponse `json:"connectors"`
	Problems   []string            `json:"problems"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
