// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Structural failure sentinels. These indicate malformed or impossible
// input and are returned before any trade is constructed. Business-rule
// rejections never use these; they come back as a ValidationResult.
var (
	ErrMalformedDirective  = errors.New("malformed trade directive")
	ErrUnsupportedStrategy = errors.New("unsupported strategy family")
	ErrEmptyChain          = errors.New("empty option chain")
	ErrInvalidPortfolio    = errors.New("invalid portfolio snapshot")
	ErrNoExpirationInRange = errors.New("no expiration within acceptable range")
)

// DirectiveError describes a structural problem with a trade directive.
type DirectiveError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("directive error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *DirectiveError) Unwrap() error {
	return ErrMalformedDirective
}

// NewDirectiveError creates a new DirectiveError.
func NewDirectiveError(field string, value interface{}, message string) *DirectiveError {
	return &DirectiveError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ChainError describes a problem with an option chain input.
type ChainError struct {
	Symbol  string
	Message string
	Err     error
}

func (e *ChainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chain error [%s]: %s: %v", e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("chain error [%s]: %s", e.Symbol, e.Message)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// NewChainError creates a new ChainError wrapping a sentinel.
func NewChainError(symbol, message string, err error) *ChainError {
	return &ChainError{
		Symbol:  symbol,
		Message: message,
		Err:     err,
	}
}

// StrategyError describes a strategy family the catalog does not know.
type StrategyError struct {
	Family string
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy error: no template for family %q", e.Family)
}

func (e *StrategyError) Unwrap() error {
	return ErrUnsupportedStrategy
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(family string) *StrategyError {
	return &StrategyError{Family: family}
}

// PortfolioError describes a degenerate portfolio snapshot.
type PortfolioError struct {
	Field   string
	Value   float64
	Message string
}

func (e *PortfolioError) Error() string {
	return fmt.Sprintf("portfolio error: %s (%.2f): %s", e.Field, e.Value, e.Message)
}

func (e *PortfolioError) Unwrap() error {
	return ErrInvalidPortfolio
}

// NewPortfolioError creates a new PortfolioError.
func NewPortfolioError(field string, value float64, message string) *PortfolioError {
	return &PortfolioError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
