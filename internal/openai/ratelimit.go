package openai

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	ai "github.com/bitop-dev/go-ai"
)

const (
	headerLimitRequests     = "x-ratelimit-limit-requests"
	headerLimitTokens       = "x-ratelimit-limit-tokens"
	headerRemainingRequests = "x-ratelimit-remaining-requests"
	headerRemainingTokens   = "x-ratelimit-remaining-tokens"
	headerResetRequests     = "x-ratelimit-reset-requests"
	headerResetTokens       = "x-ratelimit-reset-tokens"
)

// RateLimitFromHeaders returns nil when none of the rate limit headers are set.
func RateLimitFromHeaders(h http.Header) *ai.RateLimit {
	if h == nil {
		return nil
	}
	present := false
	for _, k := range []string{headerLimitRequests, headerLimitTokens, headerRemainingRequests, headerRemainingTokens, headerResetRequests, headerResetTokens} {
		if h.Get(k) != "" {
			present = true
			break
		}
	}
	if !present {
		return nil
	}
	return &ai.RateLimit{
		RequestsLimit:     atoi(h.Get(headerLimitRequests)),
		RequestsRemaining: atoi(h.Get(headerRemainingRequests)),
		RequestsReset:     duration(h.Get(headerResetRequests)),
		TokensLimit:       atoi(h.Get(headerLimitTokens)),
		TokensRemaining:   atoi(h.Get(headerRemainingTokens)),
		TokensReset:       duration(h.Get(headerResetTokens)),
	}
}

func atoi(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// duration parses reset values such as "1s", "6m0s" or "20ms".
func duration(v string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return d
}
