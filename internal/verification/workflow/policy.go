package workflow

import (
	"fmt"
	"strings"

	"vkyc/internal/verification/models"
)

// SubmitPolicy decides when a session may be submitted.
// Policies are pure and must not mutate the session.
type SubmitPolicy interface {
	// Allows reports whether s may be submitted given its progress.
	Allows(s models.Session, p models.Progress) bool
	// Reason explains why submission is blocked. Only meaningful when Allows is false.
	Reason(s models.Session, p models.Progress) string
	// Name identifies the policy in logs and responses.
	Name() string
}

// MinimumEvaluated allows submission once at least Min steps carry a verdict.
// MinimumEvaluated{Min: 1} matches the reference agent UI.
type MinimumEvaluated struct {
	Min int
}

func (p MinimumEvaluated) threshold() int {
	if p.Min < 1 {
		return 1
	}
	return p.Min
}

func (p MinimumEvaluated) Allows(_ models.Session, pr models.Progress) bool {
	return pr.Completed >= p.threshold()
}

func (p MinimumEvaluated) Reason(_ models.Session, pr models.Progress) string {
	return fmt.Sprintf("at least %d step(s) must be evaluated, %d evaluated", p.threshold(), pr.Completed)
}

func (p MinimumEvaluated) Name() string { return "min_evaluated" }

// AllEvaluated requires every catalog step to carry a verdict.
type AllEvaluated struct{}

func (AllEvaluated) Allows(_ models.Session, pr models.Progress) bool {
	return pr.Total > 0 && pr.Completed == pr.Total
}

func (AllEvaluated) Reason(_ models.Session, pr models.Progress) string {
	return fmt.Sprintf("all %d steps must be evaluated, %d pending", pr.Total, pr.Pending)
}

func (AllEvaluated) Name() string { return "all_evaluated" }

// RequiredPass requires each listed step to be pass. Other steps may be in
// any state.
type RequiredPass struct {
	Steps []models.StepID
}

func (p RequiredPass) missing(s models.Session) []string {
	var out []string
	for _, id := range p.Steps {
		i, ok := s.StepIndex(id)
		if !ok || s.Steps[i].Status != models.StatusPass {
			out = append(out, string(id))
		}
	}
	return out
}

func (p RequiredPass) Allows(s models.Session, pr models.Progress) bool {
	return pr.Completed > 0 && len(p.missing(s)) == 0
}

func (p RequiredPass) Reason(s models.Session, pr models.Progress) string {
	if pr.Completed == 0 {
		return "no steps evaluated"
	}
	return "required steps not passed: " + strings.Join(p.missing(s), ", ")
}

func (p RequiredPass) Name() string { return "required_pass" }

// Policy names accepted by ParsePolicy.
const (
	PolicyMinEvaluated = "min_evaluated"
	PolicyAllEvaluated = "all_evaluated"
	PolicyRequiredPass = "required_pass"
)

// ParsePolicy builds a SubmitPolicy from configuration values. Required steps
// are checked against the catalog so a typo fails at startup.
func ParsePolicy(name string, minEvaluated int, required []models.StepID, c stepCatalog) (SubmitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyMinEvaluated:
		if minEvaluated > c.Size() {
			return nil, fmt.Errorf("submit policy %s: minimum %d exceeds catalog size %d", PolicyMinEvaluated, minEvaluated, c.Size())
		}
		return MinimumEvaluated{Min: minEvaluated}, nil
	case PolicyAllEvaluated:
		return AllEvaluated{}, nil
	case PolicyRequiredPass:
		if len(required) == 0 {
			return nil, fmt.Errorf("submit policy %s: at least one required step is needed", PolicyRequiredPass)
		}
		for _, id := range required {
			if !c.HasStep(id) {
				return nil, fmt.Errorf("submit policy %s: unknown step %q", PolicyRequiredPass, id)
			}
		}
		return RequiredPass{Steps: required}, nil
	default:
		return nil, fmt.Errorf("unknown submit policy %q", name)
	}
}

type stepCatalog interface {
	Size() int
	HasStep(id models.StepID) bool
}
