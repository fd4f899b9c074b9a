package forecast

import (
	"context"
	"fmt"
	"math"
	"strings"

	"aqi-api/internal/domain/model"
	"aqi-api/pkg/log"
	"aqi-api/pkg/msg"
)

// The ML server signals a missing model with these phrases in its error or
// detail field. This is a known coupling to the server's wording: if the
// server ever rephrases its reply, fallback detection breaks silently, so
// the strings live only here.
const (
	markerNoShortTermModel = "no short-term model"
	markerShortTermError   = "short_term error"
)

type replyOutcome int

const (
	// replyOK means a success status with a decodable body
	replyOK replyOutcome = iota
	// replyUnavailable means transport failure, non-JSON, or a missing-model marker
	replyUnavailable
	// replyRejected means the server answered with a domain error of its own
	replyRejected
)

// classifyReply decides how an upstream reply is handled. The marker check
// runs before the status check because the server reports missing models
// with varying statuses.
func classifyReply(payload any, status int, err error) (replyOutcome, string) {
	if err != nil {
		return replyUnavailable, err.Error()
	}

	message := upstreamMessage(payload)
	lowered := strings.ToLower(message)
	if strings.Contains(lowered, markerNoShortTermModel) || strings.Contains(lowered, markerShortTermError) {
		return replyUnavailable, "no model available on ml server"
	}

	if status != 200 {
		if message == "" {
			message = fmt.Sprintf("ml server status %d", status)
		}
		return replyRejected, message
	}

	return replyOK, ""
}

// upstreamMessage pulls the error or detail text out of a decoded payload.
func upstreamMessage(payload any) string {
	fields, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	for _, field := range []string{"detail", "error"} {
		if value, ok := fields[field].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

type chainState int

const (
	stateTryPrimary chainState = iota
	stateTrySecondary
	stateDegrade
	stateDone
)

// upstreamCall issues one upstream request for the given horizon amount.
type upstreamCall func(ctx context.Context, amount int) (any, int, error)

// fallbackChain runs the primary/secondary degrade sequence for one horizon
// family: try the fine-grained upstream, and only when it is classified
// unavailable, derive a coarser horizon, fetch the monthly series and expand
// it back to the requested granularity.
type fallbackChain struct {
	label              string
	amount             int
	periodsPerCoarse   int
	primary            upstreamCall
	secondary          upstreamCall
	stampFallbackPoint func(index int) string
}

type chainResult struct {
	points []model.ForecastPoint
	source string
}

func (chain *fallbackChain) run(ctx context.Context) (*chainResult, error) {
	var coarse []model.ForecastPoint
	var cause string

	state := stateTryPrimary
	result := &chainResult{}

	for state != stateDone {
		if err := ctx.Err(); err != nil {
			return nil, model.NewUpstreamUnavailable(err, "%s forecast unavailable: %v", chain.label, err)
		}

		switch state {
		case stateTryPrimary:
			payload, status, err := chain.primary(ctx, chain.amount)
			outcome, message := classifyReply(payload, status, err)

			switch outcome {
			case replyRejected:
				return nil, model.NewUpstreamRejected("%s", message)
			case replyUnavailable:
				log.Info(msg.GetMessage("forecast.fallback", chain.label, message))
				cause = message
				state = stateTrySecondary
				continue
			}

			points := normalizeSeries(payload)
			if len(points) == 0 {
				log.Infof("Primary %s forecast returned no points, trying fallback", chain.label)
				cause = "primary returned empty forecast"
				state = stateTrySecondary
				continue
			}

			result.points = points
			result.source = sourcePrimary
			state = stateDone

		case stateTrySecondary:
			derived := deriveCoarseHorizon(chain.amount, chain.periodsPerCoarse)

			payload, status, err := chain.secondary(ctx, derived)
			outcome, message := classifyReply(payload, status, err)
			if outcome != replyOK {
				return nil, model.NewUpstreamUnavailable(nil,
					"%s forecast unavailable: %s", chain.label, firstNonEmpty(message, cause))
			}

			coarse = normalizeSeries(payload)
			if len(coarse) == 0 {
				return nil, model.NewUpstreamUnavailable(nil,
					"%s forecast unavailable: fallback returned empty data", chain.label)
			}

			state = stateDegrade

		case stateDegrade:
			values := make([]float64, len(coarse))
			for i, point := range coarse {
				values[i] = point.AQI
			}

			expanded := expandSeries(values, chain.amount)
			points := make([]model.ForecastPoint, len(expanded))
			for i, value := range expanded {
				points[i] = model.ForecastPoint{
					Timestamp: chain.stampFallbackPoint(i),
					AQI:       value,
				}
			}

			result.points = points
			result.source = sourceFallbackHybrid
			state = stateDone
		}
	}

	return result, nil
}

// deriveCoarseHorizon converts a fine-grained horizon into the number of
// coarse periods needed to cover it, never less than one.
func deriveCoarseHorizon(amount, periodsPerCoarse int) int {
	derived := int(math.Ceil(float64(amount) / float64(periodsPerCoarse)))
	if derived < 1 {
		derived = 1
	}
	return derived
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
