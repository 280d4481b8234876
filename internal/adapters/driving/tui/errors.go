package tui

import "errors"

// ErrMissingRankService is returned when the rank service is not provided.
var ErrMissingRankService = errors.New("tui: rank service is required")

// ErrMissingCorpusService is returned when the corpus service is not provided.
var ErrMissingCorpusService = errors.New("tui: corpus service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
