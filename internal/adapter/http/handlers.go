package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ktg84478/erovista/internal/domain"
)

type capacityResult struct {
	domain.MaterialCapacity
	Message string `json:"message,omitempty"`
}

type capacityResponse struct {
	Query   domain.CapacityKey `json:"query"`
	Results []capacityResult   `json:"results"`
}

type sizesResult struct {
	domain.MaterialSizes
	Message string `json:"message,omitempty"`
}

type sizesResponse struct {
	Query   domain.SizeQuery `json:"query"`
	Results []sizesResult    `json:"results"`
}

type valuesResponse struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params{q: q}
	key := domain.CapacityKey{
		MountType:            p.text("mount_type"),
		FixtureConfiguration: p.text("fixture_configuration"),
		PoleSize:             p.text("pole_size"),
		PoleHeightFt:         p.number("pole_height_ft"),
		WindSpeedMPH:         p.number("wind_speed_mph"),
	}
	if p.err != nil {
		s.writeResolverError(w, p.err)
		return
	}

	res, err := s.resolver.LookupCapacity(r.Context(), key)
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	out := capacityResponse{Query: key, Results: make([]capacityResult, 0, len(res))}
	for _, mc := range res {
		out.Results = append(out.Results, capacityResult{MaterialCapacity: mc, Message: mc.Status.Message()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSizes(w http.ResponseWriter, r *http.Request) {
	p := params{q: r.URL.Query()}
	query := domain.SizeQuery{
		MountType:            p.text("mount_type"),
		FixtureConfiguration: p.text("fixture_configuration"),
		PoleHeightFt:         p.number("pole_height_ft"),
		WindSpeedMPH:         p.number("wind_speed_mph"),
		MinEPA:               p.number("min_epa"),
	}
	if p.err != nil {
		s.writeResolverError(w, p.err)
		return
	}

	res, err := s.resolver.ResolveSizes(r.Context(), query)
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	out := sizesResponse{Query: query, Results: make([]sizesResult, 0, len(res))}
	for _, ms := range res {
		out.Results = append(out.Results, sizesResult{MaterialSizes: ms, Message: ms.Status.Message()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleValues(w http.ResponseWriter, r *http.Request) {
	field, err := domain.ParseField(r.PathValue("field"))
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	sel, err := selectionFromQuery(r.URL.Query())
	if err != nil {
		s.writeResolverError(w, err)
		return
	}

	values, err := s.resolver.AllowedValues(r.Context(), field, sel)
	if err != nil {
		s.writeResolverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, valuesResponse{Field: field.String(), Values: values})
}

// selectionFromQuery reads the optional upstream selection. Absent numeric
// parameters stay nil so the resolver can report which field is missing.
func selectionFromQuery(q url.Values) (domain.Selection, error) {
	sel := domain.Selection{
		MountType:            strings.TrimSpace(q.Get("mount_type")),
		FixtureConfiguration: strings.TrimSpace(q.Get("fixture_configuration")),
		PoleSize:             strings.TrimSpace(q.Get("pole_size")),
	}
	for name, dst := range map[string]**float64{
		"wind_speed_mph": &sel.WindSpeedMPH,
		"pole_height_ft": &sel.PoleHeightFt,
	} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Selection{}, &domain.InvalidInputError{Field: name, Reason: "not a number"}
		}
		*dst = &v
	}
	return sel, nil
}

func (s *Server) writeResolverError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("resolver request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// params collects required query parameters, keeping the first error.
type params struct {
	q   url.Values
	err error
}

func (p *params) text(name string) string {
	v := strings.TrimSpace(p.q.Get(name))
	if v == "" && p.err == nil {
		p.err = &domain.InvalidInputError{Field: name, Reason: "is required"}
	}
	return v
}

func (p *params) number(name string) float64 {
	raw := strings.TrimSpace(p.q.Get(name))
	if raw == "" {
		if p.err == nil {
			p.err = &domain.InvalidInputError{Field: name, Reason: "is required"}
		}
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if p.err == nil {
			p.err = &domain.InvalidInputError{Field: name, Reason: "not a number"}
		}
		return 0
	}
	return v
}
