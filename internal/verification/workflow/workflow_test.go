package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vkyc/internal/verification/catalog"
	"vkyc/internal/verification/models"
	dErrors "vkyc/pkg/domain-errors"
)

type WorkflowSuite struct {
	suite.Suite
	wf  *Workflow
	now time.Time
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.wf = New(catalog.Default(), nil)
	s.now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func (s *WorkflowSuite) record(sess models.Session, id models.StepID, verdict models.Status) models.Session {
	out, err := s.wf.RecordVerdict(sess, id, verdict, nil, s.now)
	s.Require().NoError(err)
	return out
}

func (s *WorkflowSuite) statusOf(sess models.Session, id models.StepID) models.Status {
	i, ok := sess.StepIndex(id)
	s.Require().True(ok)
	return sess.Steps[i].Status
}

// TestCreateSession verifies fresh sessions mirror the catalog.
func (s *WorkflowSuite) TestCreateSession() {
	sess := s.wf.CreateSession("KYC-1", s.now)

	s.Equal(models.SessionID("KYC-1"), sess.ID)
	s.Equal(catalog.DefaultVersion, sess.CatalogVersion)
	s.Empty(sess.Notes)
	s.Equal(s.now, sess.CreatedAt)
	s.Equal(s.now, sess.LastUpdatedAt)
	s.Require().Len(sess.Steps, 9)
	for i, id := range s.wf.Catalog().StepIDs() {
		s.Equal(id, sess.Steps[i].ID)
		s.Equal(models.StatusPending, sess.Steps[i].Status)
		s.Nil(sess.Steps[i].Evidence)
	}
	s.Len(sess.Questions, 12)
	s.Equal(models.Progress{Pending: 9, Total: 9}, s.wf.Progress(sess))
	s.False(s.wf.CanSubmit(sess))
}

// TestRecordVerdict covers the step state machine.
func (s *WorkflowSuite) TestRecordVerdict() {
	s.Run("sets status, evidence and timestamps", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		later := s.now.Add(time.Minute)

		out, err := s.wf.RecordVerdict(sess, "facecompare", models.StatusPass, models.Evidence(`{"score":0.91}`), later)
		s.Require().NoError(err)

		i, _ := out.StepIndex("facecompare")
		s.Equal(models.StatusPass, out.Steps[i].Status)
		s.JSONEq(`{"score":0.91}`, string(out.Steps[i].Evidence))
		s.Require().NotNil(out.Steps[i].EvaluatedAt)
		s.Equal(later, *out.Steps[i].EvaluatedAt)
		s.Equal(later, out.LastUpdatedAt)
	})

	s.Run("does not mutate the input session", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		_ = s.record(sess, "dob", models.StatusPass)
		s.Equal(models.StatusPending, s.statusOf(sess, "dob"))
	})

	s.Run("same verdict twice keeps status, replaces evidence, advances time", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		first, err := s.wf.RecordVerdict(sess, "location", models.StatusPass, models.Evidence(`{"lat":12.9}`), s.now.Add(time.Second))
		s.Require().NoError(err)
		second, err := s.wf.RecordVerdict(first, "location", models.StatusPass, models.Evidence(`{"lat":13.1}`), s.now.Add(2*time.Second))
		s.Require().NoError(err)

		i, _ := second.StepIndex("location")
		s.Equal(models.StatusPass, second.Steps[i].Status)
		s.JSONEq(`{"lat":13.1}`, string(second.Steps[i].Evidence))
		s.True(second.LastUpdatedAt.After(first.LastUpdatedAt))
		s.Equal(s.wf.Progress(first), s.wf.Progress(second))
	})

	s.Run("pass fail pass round trip touches only one step", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		sess = s.record(sess, "pancard", models.StatusPass)
		sess = s.record(sess, "pancard", models.StatusFail)
		sess = s.record(sess, "pancard", models.StatusPass)

		s.Equal(models.StatusPass, s.statusOf(sess, "pancard"))
		for _, st := range sess.Steps {
			if st.ID != "pancard" {
				s.Equal(models.StatusPending, st.Status, "step %s", st.ID)
			}
		}
	})

	s.Run("unknown step is rejected and session unchanged", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		out, err := s.wf.RecordVerdict(sess, "not-a-real-step", models.StatusPass, nil, s.now.Add(time.Hour))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnknownStep))
		s.Equal(sess, out)
		s.Equal(s.now, sess.LastUpdatedAt)
	})

	s.Run("pending verdict is rejected", func() {
		sess := s.record(s.wf.CreateSession("KYC-1", s.now), "dob", models.StatusPass)
		out, err := s.wf.RecordVerdict(sess, "dob", models.StatusPending, nil, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidVerdict))
		s.Equal(models.StatusPass, s.statusOf(out, "dob"))
	})

	s.Run("garbage verdict is rejected", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		_, err := s.wf.RecordVerdict(sess, "dob", models.Status("maybe"), nil, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidVerdict))
	})

	s.Run("step missing from an older session is rejected", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		sess.Steps = sess.Steps[:1]
		_, err := s.wf.RecordVerdict(sess, "supporting", models.StatusPass, nil, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnknownStep))
	})
}

// TestProgressInvariant checks completed + pending == total after every step.
func (s *WorkflowSuite) TestProgressInvariant() {
	sess := s.wf.CreateSession("KYC-1", s.now)
	verdicts := []models.Status{models.StatusPass, models.StatusFail}
	for i, id := range s.wf.Catalog().StepIDs() {
		sess = s.record(sess, id, verdicts[i%2])
		p := s.wf.Progress(sess)
		s.Equal(p.Total, p.Completed+p.Pending)
		s.Equal(p.Completed, p.Passed+p.Failed)
		s.Equal(9, p.Total)
		s.Equal(i+1, p.Completed)
	}
	s.Equal(models.Progress{Completed: 9, Passed: 5, Failed: 4, Pending: 0, Total: 9}, s.wf.Progress(sess))
}

// TestNotesAndQuestions covers the free-text and checklist mutations.
func (s *WorkflowSuite) TestNotesAndQuestions() {
	s.Run("notes are replaced wholesale", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		sess = s.wf.SetNotes(sess, "first", s.now)
		later := s.now.Add(time.Minute)
		out := s.wf.SetNotes(sess, "second", later)
		s.Equal("second", out.Notes)
		s.Equal("first", sess.Notes)
		s.Equal(later, out.LastUpdatedAt)
	})

	s.Run("questions toggle", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		out, err := s.wf.SetQuestion(sess, "pan-original", true, s.now)
		s.Require().NoError(err)
		s.Equal(models.QuestionProgress{Checked: 1, Total: 12}, s.wf.QuestionProgress(out))

		out, err = s.wf.SetQuestion(out, "pan-original", false, s.now)
		s.Require().NoError(err)
		s.Equal(0, s.wf.QuestionProgress(out).Checked)
	})

	s.Run("unknown question is rejected", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		_, err := s.wf.SetQuestion(sess, "nope", true, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnknownQuestion))
	})

	s.Run("questions never gate submission", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		for _, qid := range s.wf.Catalog().QuestionIDs() {
			var err error
			sess, err = s.wf.SetQuestion(sess, qid, true, s.now)
			s.Require().NoError(err)
		}
		s.False(s.wf.CanSubmit(sess))
	})
}

// TestSubmit covers submission gating and snapshot contents.
func (s *WorkflowSuite) TestSubmit() {
	s.Run("fresh session cannot submit", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		sub, err := s.wf.Submit(sess, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIncompleteWorkflow))
		s.Equal(models.Submission{}, sub)
	})

	s.Run("one verdict enables submission", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		s.False(s.wf.CanSubmit(sess))
		sess = s.record(sess, "selfie", models.StatusFail)
		s.True(s.wf.CanSubmit(sess))
	})

	s.Run("reference scenario", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		s.Equal(models.Progress{Completed: 0, Passed: 0, Failed: 0, Pending: 9, Total: 9}, s.wf.Progress(sess))

		sess = s.record(sess, "dob", models.StatusPass)
		sess = s.record(sess, "pincode", models.StatusFail)
		want := models.Progress{Completed: 2, Passed: 1, Failed: 1, Pending: 7, Total: 9}
		s.Equal(want, s.wf.Progress(sess))
		s.True(s.wf.CanSubmit(sess))

		submittedAt := s.now.Add(5 * time.Minute)
		sub, err := s.wf.Submit(sess, submittedAt)
		s.Require().NoError(err)
		s.Equal(models.SessionID("KYC-1"), sub.SessionID)
		s.Equal(submittedAt, sub.SubmittedAt)
		s.Equal(want, sub.Progress)
		s.Require().Len(sub.Steps, 9)

		pending := 0
		for _, st := range sub.Steps {
			switch st.ID {
			case "dob":
				s.Equal(models.StatusPass, st.Status)
			case "pincode":
				s.Equal(models.StatusFail, st.Status)
			default:
				s.Equal(models.StatusPending, st.Status)
				pending++
			}
		}
		s.Equal(7, pending)
	})

	s.Run("snapshot is detached from the session", func() {
		sess := s.wf.CreateSession("KYC-1", s.now)
		sess, err := s.wf.RecordVerdict(sess, "dob", models.StatusPass, models.Evidence(`{"dob":"1990-01-01"}`), s.now)
		s.Require().NoError(err)
		sub, err := s.wf.Submit(sess, s.now)
		s.Require().NoError(err)

		sess.Steps[0].Evidence[2] = 'X'
		s.JSONEq(`{"dob":"1990-01-01"}`, string(sub.Steps[0].Evidence))
	})
}

// TestPolicies verifies the swappable submission policies.
func (s *WorkflowSuite) TestPolicies() {
	s.Run("all evaluated", func() {
		wf := New(catalog.Default(), AllEvaluated{})
		sess := wf.CreateSession("KYC-2", s.now)
		ids := wf.Catalog().StepIDs()
		for _, id := range ids[:len(ids)-1] {
			var err error
			sess, err = wf.RecordVerdict(sess, id, models.StatusPass, nil, s.now)
			s.Require().NoError(err)
		}
		s.False(wf.CanSubmit(sess))
		_, err := wf.Submit(sess, s.now)
		s.Require().Error(err)
		s.Contains(err.Error(), "1 pending")

		sess, err = wf.RecordVerdict(sess, ids[len(ids)-1], models.StatusFail, nil, s.now)
		s.Require().NoError(err)
		s.True(wf.CanSubmit(sess))
	})

	s.Run("minimum evaluated threshold", func() {
		wf := New(catalog.Default(), MinimumEvaluated{Min: 2})
		sess, err := wf.RecordVerdict(wf.CreateSession("KYC-3", s.now), "dob", models.StatusPass, nil, s.now)
		s.Require().NoError(err)
		s.False(wf.CanSubmit(sess))
		sess, err = wf.RecordVerdict(sess, "selfie", models.StatusPass, nil, s.now)
		s.Require().NoError(err)
		s.True(wf.CanSubmit(sess))
	})

	s.Run("required pass", func() {
		wf := New(catalog.Default(), RequiredPass{Steps: []models.StepID{"dob", "facecompare"}})
		sess, err := wf.RecordVerdict(wf.CreateSession("KYC-4", s.now), "dob", models.StatusPass, nil, s.now)
		s.Require().NoError(err)
		sess, err = wf.RecordVerdict(sess, "facecompare", models.StatusFail, nil, s.now)
		s.Require().NoError(err)
		s.False(wf.CanSubmit(sess))

		_, err = wf.Submit(sess, s.now)
		s.Require().Error(err)
		s.Contains(err.Error(), "facecompare")

		sess, err = wf.RecordVerdict(sess, "facecompare", models.StatusPass, nil, s.now)
		s.Require().NoError(err)
		s.True(wf.CanSubmit(sess))
	})
}

func (s *WorkflowSuite) TestParsePolicy() {
	c := catalog.Default()

	p, err := ParsePolicy("", 1, nil, c)
	s.Require().NoError(err)
	s.Equal(MinimumEvaluated{Min: 1}, p)

	p, err = ParsePolicy("ALL_EVALUATED", 0, nil, c)
	s.Require().NoError(err)
	s.Equal(PolicyAllEvaluated, p.Name())

	p, err = ParsePolicy("required_pass", 0, []models.StepID{"dob"}, c)
	s.Require().NoError(err)
	s.Equal(RequiredPass{Steps: []models.StepID{"dob"}}, p)

	_, err = ParsePolicy("required_pass", 0, []models.StepID{"nope"}, c)
	s.Error(err)
	_, err = ParsePolicy("required_pass", 0, nil, c)
	s.Error(err)
	_, err = ParsePolicy("min_evaluated", 10, nil, c)
	s.Error(err)
	_, err = ParsePolicy("strictest", 0, nil, c)
	s.Error(err)
}
