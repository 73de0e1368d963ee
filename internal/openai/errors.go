package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	ai "github.com/bitop-dev/go-ai"
	goopenai "github.com/sashabaranov/go-openai"
)

const ProviderName = "openai"

// MapError converts a go-openai failure into *ai.Error and decides whether it
// is worth retrying. Context cancellation and deadline errors are returned
// unchanged; they belong to the caller, not to the provider.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var pe *ai.Error
	if errors.As(err, &pe) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &ai.Error{
			Provider:  ProviderName,
			Code:      stringifyCode(apiErr.Code, apiErr.Type),
			Status:    apiErr.HTTPStatusCode,
			Message:   apiErr.Message,
			Retryable: shouldRetryStatus(apiErr.HTTPStatusCode),
			Cause:     err,
		}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		msg := http.StatusText(reqErr.HTTPStatusCode)
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &ai.Error{
			Provider:  ProviderName,
			Code:      "http_error",
			Status:    reqErr.HTTPStatusCode,
			Message:   msg,
			Retryable: shouldRetryStatus(reqErr.HTTPStatusCode),
			Cause:     err,
		}
	}

	var ne net.Error
	if errors.As(err, &ne) {
		code := "network_error"
		if ne.Timeout() {
			code = "timeout"
		}
		return &ai.Error{Provider: ProviderName, Code: code, Message: err.Error(), Retryable: true, Cause: err}
	}
	return err
}

func shouldRetryStatus(status int) bool {
	return status == http.StatusRequestTimeout ||
		status == http.StatusConflict ||
		status == http.StatusTooManyRequests ||
		(status >= 500 && status <= 599)
}

func stringifyCode(code any, fallback string) string {
	switch v := code.(type) {
	case string:
		if v != "" {
			return v
		}
	case int:
		return fmt.Sprint(v)
	case float64:
		return fmt.Sprint(int(v))
	}
	if fallback != "" {
		return fallback
	}
	return "unknown"
}
