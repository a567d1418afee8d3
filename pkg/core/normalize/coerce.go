package normalize

import (
	"math"
	"strconv"
	"strings"

	"statement_insight/pkg/core/logger"
)

var zeroTokens = map[string]bool{"na": true, "n/a": true, "-": true}

// CoerceValue turns a decoded JSON value into a finite, non-negative amount.
//
// Numbers pass through as their absolute value. Strings lose "$" and commas,
// accounting negatives such as "(1,200)" are read as 1200, and empty strings or
// the tokens na, n/a and "-" give 0. Anything unparseable gives 0.
func CoerceValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return finiteAbs(n)
	case float32:
		return finiteAbs(float64(n))
	case int:
		return finiteAbs(float64(n))
	case int64:
		return finiteAbs(float64(n))
	case string:
		return parseAmount(n)
	default:
		if v != nil {
			logger.Log.WithField("value", v).Warn("Non-numeric value, defaulting to 0")
		}
		return 0
	}
}

func parseAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || zeroTokens[strings.ToLower(cleaned)] {
		logger.Log.WithField("value", raw).Warn("Empty or invalid value, defaulting to 0")
		return 0
	}

	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		logger.Log.WithField("value", raw).Warn("Error converting value to numeric, defaulting to 0")
		return 0
	}
	return finiteAbs(f)
}

func finiteAbs(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	// Abs(-0) is +0, so negative zero never reaches the client.
	return math.Abs(f)
}
