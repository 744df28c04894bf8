package laxjson

import (
	"strings"
	"testing"

	jujutesting "github.com/juju/testing"
	"github.com/kr/pretty"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, mirroring the teacher's own
// per-issue regression suite (pongo2_issues_test.go).
func TestFixRegressions(t *testing.T) { TestingT(t) }

// FixRegressionSuite holds the end-to-end repair scenarios: one test
// method per scenario, the same shape as the teacher's issue suite.
// Embedding LoggingSuite routes loggo output (fixLog et al.) into the
// suite's test log, so assertions can inspect debug logging the way
// plain testing.T table tests can't.
type FixRegressionSuite struct {
	jujutesting.LoggingSuite
}

var _ = Suite(&FixRegressionSuite{})

func (s *FixRegressionSuite) SetUpTest(c *C) {
	s.LoggingSuite.SetUpTest(c)
	SetDebug(true)
}

func (s *FixRegressionSuite) TearDownTest(c *C) {
	SetDebug(false)
	s.LoggingSuite.TearDownTest(c)
}

func (s *FixRegressionSuite) TestMultiDefectRepairIsLogged(c *C) {
	res, err := Fix([]byte("{foo: 'bar', baz: [1, 2,],}"), DefaultConfig())
	c.Assert(err, IsNil)
	c.Assert(res.WasFixed, Equals, true)
	c.Assert(strings.Contains(c.GetTestLog(), "repair"), Equals, true)
}

func (s *FixRegressionSuite) TestAlreadyValidInputLogsNoRepairs(c *C) {
	res, err := Fix([]byte(`{"a":1}`), DefaultConfig())
	c.Assert(err, IsNil)
	c.Assert(res.WasFixed, Equals, false)
	c.Assert(strings.Contains(c.GetTestLog(), "repair"), Equals, false)
}

// TestIdempotentFixTreeEqualityWithPrettyDiff runs the repair-then-reparse
// round trip spec §8 requires and, on failure, reports a kr/pretty
// structural diff between the two trees instead of a flat mismatch dump.
func (s *FixRegressionSuite) TestIdempotentFixTreeEqualityWithPrettyDiff(c *C) {
	input := `{coordinates: -0.1695, 51.4865]}`
	first, err := Fix([]byte(input), DefaultConfig())
	c.Assert(err, IsNil)

	firstTree, err := Parse(first.Text)
	c.Assert(err, IsNil)

	second, err := Fix(first.Text, DefaultConfig())
	c.Assert(err, IsNil)
	secondTree, err := Parse(second.Text)
	c.Assert(err, IsNil)

	if !firstTree.Equal(secondTree) {
		c.Fatalf("fixed point not reached:\n%s", strings.Join(pretty.Diff(firstTree, secondTree), "\n"))
	}
	c.Assert(second.WasFixed, Equals, false)
}

func (s *FixRegressionSuite) TestDroppedMultipleRootsAreNotRecordedAsWrapped(c *C) {
	cfg := DefaultConfig()
	cfg.WrapMultipleRoots = false
	res, err := Fix([]byte(`{"a":1}{"b":2}`), cfg)
	c.Assert(err, IsNil)
	for _, f := range res.DetailedFixes {
		c.Assert(f.Kind, Not(Equals), FixMultipleRoots)
	}
}

func (s *FixRegressionSuite) TestValidatorAndFixerAgreeOnWellFormedInput(c *C) {
	res, err := Fix([]byte(`{"a":[1,2,3],"b":null}`), DefaultConfig())
	c.Assert(err, IsNil)
	diags := Validate(res.Text)
	c.Assert(HasErrors(diags), Equals, false)
}
