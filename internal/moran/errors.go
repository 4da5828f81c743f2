package moran

import "errors"

var (
	// ErrInvalidParameter indicates a run configuration outside the valid domain.
	ErrInvalidParameter = errors.New("moran: invalid parameter")

	// ErrEmptyPool indicates a draw from a pool whose total weight is zero.
	ErrEmptyPool = errors.New("moran: empty sampling pool")

	// ErrUnknownIndividual indicates a replacement targeting an ID not in the population.
	ErrUnknownIndividual = errors.New("moran: individual not in population")
)
