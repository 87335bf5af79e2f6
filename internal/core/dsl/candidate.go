package dsl

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"vidtally/internal/core/vocab"
	perr "vidtally/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

// candidate is the wire form of a Query: what the LLM adapter is asked to
// emit and what Query marshals to. Field spellings here are the contract
type candidate struct {
	Metric      string              `json:"metric" validate:"required"`
	Aggregation string              `json:"aggregation" validate:"required"`
	Scope       string              `json:"scope,omitempty"`
	TimeRange   *candidateRange     `json:"time_range,omitempty"`
	CreatorID   string              `json:"creator_id,omitempty"`
	VideoID     string              `json:"video_id,omitempty"`
	Threshold   *candidateThreshold `json:"threshold,omitempty"`
	Distinct    bool                `json:"distinct,omitempty"`
}

type candidateRange struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

type candidateThreshold struct {
	Op    string `json:"op" validate:"required"`
	Value int64  `json:"value"`
}

var (
	vOnce sync.Once
	vd    *validator.Validate
)

// vget returns the package validator, json tag names in messages
func vget() *validator.Validate {
	vOnce.Do(func() {
		vd = validator.New(validator.WithRequiredStructEnabled())
		vd.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return vd
}

// MarshalJSON renders the candidate wire form; DecodeCandidate reverses it
// losslessly for any valid Query
func (q Query) MarshalJSON() ([]byte, error) {
	c := candidate{
		Metric:      string(q.Metric),
		Aggregation: string(q.Aggregation),
		Scope:       string(q.Scope),
		CreatorID:   q.CreatorID,
		VideoID:     q.VideoID,
		Distinct:    q.Distinct,
	}
	if q.TimeRange != nil {
		c.TimeRange = &candidateRange{Start: q.TimeRange.Start, End: q.TimeRange.End}
	}
	if q.Threshold != nil {
		c.Threshold = &candidateThreshold{Op: string(q.Threshold.Cmp), Value: q.Threshold.Value}
	}
	return json.Marshal(c)
}

// DecodeCandidate parses candidate JSON and returns a validated Query.
// Ordered checks: JSON shape, required fields, enum membership, cross-field
// rules. The first violation wins; unknown JSON keys are rejected outright
func DecodeCandidate(data []byte) (Query, error) {
	var c candidate
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Query{}, perr.JSONErrf("decode candidate: %v", err)
	}

	if err := vget().Struct(c); err != nil {
		if fes, ok := err.(validator.ValidationErrors); ok && len(fes) > 0 {
			fe := fes[0]
			return Query{}, perr.Validationf("candidate field %s fails %s", fe.Field(), fe.Tag())
		}
		return Query{}, perr.Validationf("candidate: %v", err)
	}

	q, err := c.toQuery()
	if err != nil {
		return Query{}, err
	}
	q = q.Normalized()
	if err := Validate(q); err != nil {
		return Query{}, err
	}
	return q, nil
}

// toQuery maps wire strings onto vocabulary values, rejecting enum misses
func (c candidate) toQuery() (Query, error) {
	m, ok := vocab.ParseMetric(c.Metric)
	if !ok {
		return Query{}, perr.Schemaf("unknown metric %q", c.Metric)
	}
	agg, ok := vocab.ParseAggregation(c.Aggregation)
	if !ok {
		return Query{}, perr.Schemaf("unknown aggregation %q", c.Aggregation)
	}

	q := Query{
		Metric:      m,
		Aggregation: agg,
		CreatorID:   strings.TrimSpace(c.CreatorID),
		VideoID:     strings.TrimSpace(c.VideoID),
		Distinct:    c.Distinct,
	}

	if c.Scope != "" {
		sc, ok := vocab.ParseScope(c.Scope)
		if !ok {
			return Query{}, perr.Schemaf("unknown scope %q", c.Scope)
		}
		q.Scope = sc
	}
	if c.TimeRange != nil {
		q.TimeRange = &Range{Start: c.TimeRange.Start, End: c.TimeRange.End}
	}
	if c.Threshold != nil {
		cmp, ok := vocab.ParseComparator(c.Threshold.Op)
		if !ok {
			return Query{}, perr.Schemaf("unknown comparator %q", c.Threshold.Op)
		}
		q.Threshold = &Threshold{Cmp: cmp, Value: c.Threshold.Value}
	}
	return q, nil
}

// Validate enforces enum membership and the cross-field rules on an
// already-built Query. Strategies that construct queries directly run this
// before handing anything to the compiler
func Validate(q Query) error {
	if _, ok := vocab.ParseMetric(string(q.Metric)); !ok {
		return perr.Schemaf("unknown metric %q", q.Metric)
	}
	if _, ok := vocab.ParseAggregation(string(q.Aggregation)); !ok {
		return perr.Schemaf("unknown aggregation %q", q.Aggregation)
	}
	if _, ok := vocab.ParseScope(string(q.Scope)); !ok {
		return perr.Schemaf("unknown scope %q", q.Scope)
	}
	if _, ok := q.Metric.Column(q.Scope); !ok {
		return perr.Schemaf("metric %s has no column in scope %s", q.Metric, q.Scope)
	}

	if q.Threshold != nil {
		if _, ok := q.Threshold.Cmp.SQL(); !ok {
			return perr.Schemaf("unknown comparator %q", q.Threshold.Cmp)
		}
		if q.Aggregation != vocab.AggCount {
			return perr.Validationf("threshold requires count aggregation, got %s", q.Aggregation)
		}
	}
	if q.Distinct && q.Aggregation != vocab.AggCount {
		return perr.Validationf("distinct requires count aggregation, got %s", q.Aggregation)
	}
	if q.TimeRange != nil && q.TimeRange.End.Before(q.TimeRange.Start) {
		return perr.Validationf("time_range end precedes start")
	}
	return nil
}
