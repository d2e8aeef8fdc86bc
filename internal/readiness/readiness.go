// Package readiness rates pre-call device capability checks.
//
// Probing cameras, microphones, GPS and bandwidth happens on the customer's
// device; this package only rates the already-resolved results and decides
// whether the call may start.
package readiness

import (
	"fmt"
	"slices"
	"strings"

	dErrors "vkyc/pkg/domain-errors"
)

// Capability names a device capability probed before the call.
type Capability string

const (
	CapabilityCamera     Capability = "camera"
	CapabilityMicrophone Capability = "microphone"
	CapabilityLocation   Capability = "location"
	CapabilityNetwork    Capability = "network"
)

// RequiredCapabilities must all be present and usable for a call to start.
var RequiredCapabilities = []Capability{
	CapabilityCamera,
	CapabilityMicrophone,
	CapabilityLocation,
	CapabilityNetwork,
}

// Rating grades one capability.
type Rating string

const (
	RatingGood   Rating = "good"
	RatingFair   Rating = "fair"
	RatingPoor   Rating = "poor"
	RatingDenied Rating = "denied"
)

// Usable reports whether the rating is good enough for the call.
func (r Rating) Usable() bool {
	return r == RatingGood || r == RatingFair
}

// Check is a resolved capability probe result.
type Check struct {
	Capability Capability `json:"capability"`
	Granted    bool       `json:"granted"`
	Quality    int        `json:"quality"`
	Message    string     `json:"message,omitempty"`
}

// Thresholds sets the minimum quality for each rating.
type Thresholds struct {
	Good int
	Fair int
}

// DefaultThresholds rate 80+ as good and 60+ as fair.
var DefaultThresholds = Thresholds{Good: 80, Fair: 60}

// Result is the rating for one capability.
type Result struct {
	Capability Capability `json:"capability"`
	Rating     Rating     `json:"rating"`
	Quality    int        `json:"quality"`
	Message    string     `json:"message,omitempty"`
}

// Report is the overall readiness verdict.
type Report struct {
	Ready   bool         `json:"ready"`
	Results []Result     `json:"results"`
	Missing []Capability `json:"missing,omitempty"`
}

// ParseCapability validates a capability name.
func ParseCapability(raw string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(RequiredCapabilities, c) {
		return c, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown capability %q", raw))
}

// Validate checks the threshold ordering.
func (t Thresholds) Validate() error {
	if t.Fair < 0 || t.Good > 100 || t.Fair > t.Good {
		return fmt.Errorf("readiness thresholds must satisfy 0 <= fair <= good <= 100, got fair=%d good=%d", t.Fair, t.Good)
	}
	return nil
}

// Rate grades a single check.
func (t Thresholds) Rate(c Check) Rating {
	switch {
	case !c.Granted:
		return RatingDenied
	case c.Quality >= t.Good:
		return RatingGood
	case c.Quality >= t.Fair:
		return RatingFair
	default:
		return RatingPoor
	}
}

// Evaluate rates each check and decides readiness. Results follow the order
// of RequiredCapabilities; a capability reported twice is rejected.
func Evaluate(checks []Check, t Thresholds) (Report, error) {
	byCap := make(map[Capability]Check, len(checks))
	for _, c := range checks {
		capability, err := ParseCapability(string(c.Capability))
		if err != nil {
			return Report{}, err
		}
		if c.Quality < 0 || c.Quality > 100 {
			return Report{}, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("%s quality must be between 0 and 100", capability))
		}
		if _, dup := byCap[capability]; dup {
			return Report{}, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("capability %s reported more than once", capability))
		}
		c.Capability = capability
		byCap[capability] = c
	}

	report := Report{Ready: true}
	for _, capability := range RequiredCapabilities {
		c, ok := byCap[capability]
		if !ok {
			report.Missing = append(report.Missing, capability)
			report.Ready = false
			continue
		}
		rating := t.Rate(c)
		if !rating.Usable() {
			report.Ready = false
		}
		report.Results = append(report.Results, Result{
			Capability: capability,
			Rating:     rating,
			Quality:    c.Quality,
			Message:    c.Message,
		})
	}
	return report, nil
}
