package coord

import (
	"errors"

	"github.com/abelbrown/moviehub/internal/tmdb"
)

type operation int

const (
	opList operation = iota
	opDetails
	opGenres
)

// failureEffect is the state change applied when an operation fails.
// No failure is ever shown to the user as an error.
type failureEffect struct {
	clearResults bool
	stopLoading  bool
}

// failurePolicy applies to every error class alike; NetworkError and
// ResponseFormatError are distinguished only in logs.
//
//	list fetch    results -> empty, loading -> false
//	details fetch state untouched, overlay stays closed
//	genre catalog catalog stays empty, retry allowed
var failurePolicy = map[operation]failureEffect{
	opList:    {clearResults: true, stopLoading: true},
	opDetails: {},
	opGenres:  {},
}

func (c *Coordinator) applyFailure(op operation) {
	eff := failurePolicy[op]
	if eff.clearResults {
		c.state.Results = []tmdb.Movie{}
	}
	if eff.stopLoading {
		c.state.Loading = false
	}
}

// errorClass names the failure kind for logs and events.
func errorClass(err error) string {
	var ne *tmdb.NetworkError
	var fe *tmdb.ResponseFormatError
	switch {
	case errors.As(err, &ne):
		return "network"
	case errors.As(err, &fe):
		return "format"
	default:
		return "other"
	}
}
