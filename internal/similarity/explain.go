// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"fmt"
	"math"
	"strings"
)

// explainNoiseFloor is the minimum raw score a signal needs before it is
// worth mentioning in an explanation.
const explainNoiseFloor = 0.3

// explainRule renders one signal type into a human-readable fragment.
// Rules are evaluated in fixed priority order so explanations stay
// deterministic and easy to extend.
type explainRule struct {
	signal SignalType
	render func(sig Signal) string
}

var explainRules = []explainRule{
	{SignalDistance, func(sig Signal) string {
		if meters, ok := sig.Metadata["distance_meters"].(float64); ok {
			return fmt.Sprintf("%.0fm away", meters)
		}
		return "very close by"
	}},
	{SignalTitle, func(sig Signal) string {
		if sig.RawScore >= 0.99 {
			return "matching title"
		}
		return "similar title"
	}},
	{SignalTags, func(sig Signal) string {
		return "matching tags"
	}},
}

// Explain turns a scored result into a short justification string: the
// rounded overall score as a percentage, followed by a parenthetical list
// of the signals that contributed meaningfully, in priority order distance,
// title, tags. Deterministic for identical input, no side effects.
//
//	"88% match (12m away, similar title)"
//	"35% match"
func Explain(res Result) string {
	byType := make(map[SignalType]Signal, len(res.Signals))
	for _, sig := range res.Signals {
		byType[sig.Type] = sig
	}

	var fragments []string
	for _, rule := range explainRules {
		sig, ok := byType[rule.signal]
		if !ok || sig.RawScore <= explainNoiseFloor {
			continue
		}
		fragments = append(fragments, rule.render(sig))
	}

	percent := int(math.Round(res.OverallScore * 100))
	if len(fragments) == 0 {
		return fmt.Sprintf("%d%% match", percent)
	}
	return fmt.Sprintf("%d%% match (%s)", percent, strings.Join(fragments, ", "))
}
