package minting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fkhayef/popbarter/pkg/apperr"
)

// Common errors
var (
	ErrCodeRequired     = apperr.New(apperr.CodeValidation, "code is required")
	ErrStatementFields  = apperr.New(apperr.CodeValidation, "bank_code, account_number, start_date and end_date are required")
	ErrInvalidDate      = apperr.New(apperr.CodeValidation, "dates must be YYYY-MM-DD")
	ErrDateRange        = apperr.New(apperr.CodeValidation, "end_date must not be before start_date")
	ErrNoAccounts       = apperr.New(apperr.CodeUpstream, "finverse returned no accounts")
	ErrPresetNotFound   = apperr.New(apperr.CodeNotFound, "preset not found")
	ErrSourceNotEnabled = apperr.New(apperr.CodeUnavailable, "data source is not configured")
)

// maxErrorBody bounds how much of an upstream error body is kept for logs.
const maxErrorBody = 512

// statusError reports a non-2xx upstream reply.
type statusError struct {
	Source string
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s responded %d: %s", e.Source, e.Status, e.Body)
}

func checkStatus(source string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &statusError{Source: source, Status: resp.StatusCode, Body: string(body)}
}

// upstreamError classifies a failed fetch. ctx is the deadline-bound context
// the fetch ran under.
func upstreamError(ctx context.Context, source string, err error) error {
	var coded *apperr.Error
	if errors.As(err, &coded) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.Wrap(apperr.CodeUpstreamTimeout, source+" did not respond in time", err)
	}
	return apperr.Wrap(apperr.CodeUpstream, source+" data could not be retrieved", err)
}
