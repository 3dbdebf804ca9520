package kmer

import "fmt"

// KmerError is the base error type for k-mer encoding.
type KmerError interface {
	error
	IsKmerError()
}

// InvalidBaseError is returned when a window contains a character outside
// {A,C,G,T} (case-insensitive).
type InvalidBaseError struct {
	Position int
	Found    byte
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidBaseError) IsKmerError() {}

// InvalidKError is returned when k cannot be packed into a Code.
type InvalidKError struct {
	K int
}

func (e *InvalidKError) Error() string {
	return fmt.Sprintf("k must be in [%d, %d], got %d", MinK, MaxK, e.K)
}

func (e *InvalidKError) IsKmerError() {}
