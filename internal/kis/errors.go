package kis

import "fmt"

// AuthError means the token endpoint rejected the credentials or could
// not be reached. It is never fatal to a ranking request: the batch
// layer degrades to skip/fallback.
type AuthError struct {
	Status int // HTTP status, 0 when the call never completed
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("kis auth failed with status %d", e.Status)
	}
	return fmt.Sprintf("kis auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError means a single stock quote could not be produced: non-2xx
// response, malformed payload, missing field, or network failure.
// Recovered locally by skipping the stock.
type FetchError struct {
	Code   string // 종목코드
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("kis quote failed for %s: %s", e.Code, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }
