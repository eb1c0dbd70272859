package basiclang

import (
	"strings"
	"testing"

	jujutesting "github.com/juju/testing"
	"github.com/kylelemons/godebug/pretty"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, alongside the testify
// style used everywhere else in this package.
func TestErrorsGocheck(t *testing.T) { TestingT(t) }

type ErrorsSuite struct {
	jujutesting.CleanupSuite
}

var _ = Suite(&ErrorsSuite{})

func (s *ErrorsSuite) TestNonRuntimeErrorOmitsTraceback(c *C) {
	err := NewIllegalCharacterError(Position{FileName: "<gocheck>", FileText: "@"}, Position{FileName: "<gocheck>", FileText: "@", Col: 1}, "Illegal character '@'")
	c.Check(strings.Contains(err.Error(), "Traceback"), Equals, false)
	c.Check(err.Kind, Equals, IllegalCharacter)
}

func (s *ErrorsSuite) TestRuntimeErrorIncludesTraceback(c *C) {
	ctx := NewContext("<main>", nil, Position{})
	err := NewRuntimeError(Position{FileName: "<gocheck>"}, Position{FileName: "<gocheck>"}, "boom", ctx)

	c.Check(strings.Contains(err.Error(), "Traceback (most recent call last):"), Equals, true)
	c.Check(strings.Contains(err.Error(), "in <main>"), Equals, true)
}

func (s *ErrorsSuite) TestExpectedCharacterErrorPrefixesMessage(c *C) {
	err := NewExpectedCharacterError(Position{}, Position{}, "'=' after '!'")
	c.Check(err.Message, Equals, "Expected '=' after '!'")
}

// TestErrorMessageShapeIsStable pins down the rendered error's overall
// layout (kind, message, file header, caret line) using a structural
// diff instead of a single giant string literal, so a change to any
// one line's wording shows up as a small, readable diff rather than a
// full string mismatch.
func TestErrorMessageShapeIsStable(t *testing.T) {
	err := NewIllegalCharacterError(
		Position{FileName: "<diff-test>", FileText: "@", Idx: 0, Line: 0, Col: 0},
		Position{FileName: "<diff-test>", FileText: "@", Idx: 1, Line: 0, Col: 1},
		"Illegal character '@'",
	)

	got := strings.Split(err.Error(), "\n")
	want := []string{
		"IllegalCharacter: Illegal character '@'",
		"File <diff-test>, line 1:",
		"",
		"@",
		"^",
	}

	if diff := pretty.Compare(want, got); diff != "" {
		t.Fatalf("error rendering changed shape:\n%s", diff)
	}
}
