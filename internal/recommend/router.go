// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package recommend

import (
	"context"

	"github.com/tomtom215/hybridrec/internal/metrics"
)

// Route is the per-request classification of a user.
type Route int

const (
	// RouteUnknownUser serves popularity-based cold-start results.
	RouteUnknownUser Route = iota

	// RouteKnownUser serves personalized hybrid results.
	RouteKnownUser
)

// String returns the metric-label form of the route.
func (r Route) String() string {
	if r == RouteKnownUser {
		return "known_user"
	}
	return "unknown_user"
}

// Route classifies user: known when it has a row in the interaction matrix.
func (s *Snapshot) Route(user string) Route {
	if s == nil || s.Interactions == nil {
		return RouteUnknownUser
	}
	if _, ok := s.Interactions.UserIndex(user); ok {
		return RouteKnownUser
	}
	return RouteUnknownUser
}

// Response is the outcome of a routed recommendation request. Exactly one
// of Personalized and Popular is populated, according to Route.
type Response struct {
	User         string
	Route        Route
	Personalized Result[CollaborativeRecord]
	Popular      Result[ColdStartRecord]
}

// Err returns the error of the populated result.
func (r *Response) Err() error {
	if r.Route == RouteKnownUser {
		return r.Personalized.Err
	}
	return r.Popular.Err
}

// Len returns the number of records in the populated result.
func (r *Response) Len() int {
	if r.Route == RouteKnownUser {
		return r.Personalized.Len()
	}
	return r.Popular.Len()
}

// Records returns the populated record slice for serialization.
func (r *Response) Records() any {
	if r.Route == RouteKnownUser {
		return r.Personalized.Items
	}
	return r.Popular.Items
}

// Recommend routes user to hybrid recommendations when the user has
// interaction history and to cold-start sampling otherwise. It never
// panics on unknown users; failures surface as an empty result.
func (e *Engine) Recommend(ctx context.Context, user string) *Response {
	resp := &Response{
		User:  user,
		Route: e.snapshot.Load().Route(user),
	}

	e.log(ctx).Debug().
		Str("user", user).
		Str("route", resp.Route.String()).
		Msg("Routing recommendation request")

	switch resp.Route {
	case RouteKnownUser:
		resp.Personalized = e.Hybrid(ctx, user)
		resp.Popular = succeed[ColdStartRecord](nil)
	default:
		resp.Popular = e.ColdStart(ctx)
		resp.Personalized = succeed[CollaborativeRecord](nil)
	}

	metrics.RecordRecommendation(resp.Route.String(), resp.Len())
	return resp
}
