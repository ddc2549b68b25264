package upload

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

const (
	hoursPerYear  = 40 * 52
	monthsPerYear = 12
)

var (
	amountToken  = regexp.MustCompile(`[\d,.]*\d[\d,.]*`)
	nonAmountRun = regexp.MustCompile(`[^\d.]`)
)

// ParseSalary turns free text like "$50 per hour" into an annualized
// range. It never fails: unparsable text yields two nil bounds.
func ParseSalary(text string, logger *logging.Logger) domain.SalaryRange {
	var out domain.SalaryRange

	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return out
	}

	multiplier := 1.0
	switch {
	case strings.Contains(normalized, "hour"):
		multiplier = hoursPerYear
	case strings.Contains(normalized, "month"):
		multiplier = monthsPerYear
	}

	tokens := amountToken.FindAllString(normalized, -1)
	if len(tokens) == 0 {
		if logger != nil {
			logger.Debug("salary text has no amounts", "salary", text)
		}
		return out
	}

	amounts := make([]float64, 0, 2)
	for _, tok := range tokens[:min(len(tokens), 2)] {
		v, err := strconv.ParseFloat(nonAmountRun.ReplaceAllString(tok, ""), 64)
		if err != nil {
			if logger != nil {
				logger.Warn("could not parse salary text", "salary", text, "err", err)
			}
			return domain.SalaryRange{}
		}
		amounts = append(amounts, v*multiplier)
	}

	low, high := amounts[0], amounts[0]
	if len(amounts) == 2 {
		high = amounts[1]
	}
	out.SalaryMin = &low
	out.SalaryMax = &high
	return out
}
