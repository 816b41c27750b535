package dto

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/lookup"
)

// ErrInvalidParameter is returned for malformed query parameters.
var ErrInvalidParameter = errors.New("invalid query parameter")

// SearchParams are the query parameters of a search request.
//
// The operand is either q, a single raw query string, or one or more
// term parameters. Terms become an Or group for match and a term list
// for match_near.
type SearchParams struct {
	Field  string
	Lookup string
	Query  string
	Terms  []string
	Within int
	Limit  int
	Offset int
	Rank   bool
}

// ParseSearchParams reads SearchParams from a URL query.
func ParseSearchParams(values url.Values) (SearchParams, error) {
	p := SearchParams{
		Field:  values.Get("field"),
		Lookup: values.Get("lookup"),
		Query:  values.Get("q"),
		Terms:  values["term"],
		Rank:   values.Get("order") == "rank",
	}
	if p.Lookup == "" {
		p.Lookup = lookup.Match
	}
	if p.Field == "" {
		return SearchParams{}, fmt.Errorf("%w: field is required", ErrInvalidParameter)
	}
	if p.Query != "" && len(p.Terms) > 0 {
		return SearchParams{}, fmt.Errorf("%w: q and term are exclusive", ErrInvalidParameter)
	}
	if order := values.Get("order"); order != "" && order != "rank" && order != "rowid" {
		return SearchParams{}, fmt.Errorf("%w: order must be rank or rowid", ErrInvalidParameter)
	}

	var err error
	if p.Within, err = intParam(values, "within"); err != nil {
		return SearchParams{}, err
	}
	if p.Limit, err = intParam(values, "limit"); err != nil {
		return SearchParams{}, err
	}
	if p.Offset, err = intParam(values, "offset"); err != nil {
		return SearchParams{}, err
	}
	return p, nil
}

// Operand builds the lookup operand.
func (p SearchParams) Operand() (any, error) {
	if len(p.Terms) == 0 {
		if p.Query == "" {
			return nil, fmt.Errorf("%w: q or term is required", ErrInvalidParameter)
		}
		if p.Lookup == lookup.MatchNear && p.Within > 0 {
			n, err := fts.NewNearRaw(p.Query)
			if err != nil {
				return nil, err
			}
			return n.Within(p.Within), nil
		}
		return p.Query, nil
	}

	switch p.Lookup {
	case lookup.MatchNear:
		if p.Within > 0 {
			n, err := fts.NewNear(p.Terms...)
			if err != nil {
				return nil, err
			}
			return n.Within(p.Within), nil
		}
		return p.Terms, nil
	case lookup.Match:
		if len(p.Terms) == 1 {
			return fts.NewLiteral(p.Terms[0]), nil
		}
		return fts.NewOr(p.Terms...)
	default:
		if len(p.Terms) != 1 {
			return nil, fmt.Errorf("%w: %s takes a single term", ErrInvalidParameter, p.Lookup)
		}
		return fts.NewLiteral(p.Terms[0]), nil
	}
}

func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidParameter, name)
	}
	return n, nil
}
