package http

import "aqi-api/pkg/log"

// RetryLogger is notified before each retry attempt made under a backoff policy.
type RetryLogger interface {
	LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int)
}

// ZapRetryLogger logs retry attempts through the application logger.
type ZapRetryLogger struct{}

func (ZapRetryLogger) LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int) {
	log.Warnw("retrying http request",
		"method", method,
		"url", url,
		"status", httpStatus,
		"error", err,
		"attempt", retryCount,
		"maxRetries", maxRetries)
}
