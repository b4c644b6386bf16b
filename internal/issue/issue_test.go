// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := WrapWithContext(cause, "register module", "team_vpc")

	want := "failed to register module: team_vpc: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() cannot see the wrapped cause")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("missing required variables")
	err := NewErrorContext().
		WithOperation("render module").
		WithResource("aws_vpc").
		WithSuggestion("Pass --var name=<value>").
		WithSuggestion("Run 'tfreg docs aws_vpc' to see the variable schema").
		Wrap(cause).
		Build()

	if !err.HasSuggestions() {
		t.Fatal("HasSuggestions() = false, want true")
	}

	formatted := err.Format(false)
	for _, want := range []string{
		"failed to render module: aws_vpc",
		"• Pass --var name=<value>",
		"• Run 'tfreg docs aws_vpc'",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format(false) = %q, want substring %q", formatted, want)
		}
	}
	if strings.Contains(formatted, "Error chain") {
		t.Error("Format(false) includes the error chain, want verbose-only")
	}
}

func TestActionableError_FormatVerboseShowsChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("unique constraint failed")
	middle := WrapWithOperation(inner, "insert module")
	outer := WrapWithOperation(middle, "register module")

	formatted := outer.Format(true)
	if !strings.Contains(formatted, "Error chain:") {
		t.Fatalf("Format(true) = %q, want error chain section", formatted)
	}
	if !strings.Contains(formatted, "unique constraint failed") {
		t.Errorf("Format(true) = %q, want innermost cause listed", formatted)
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "anything") != nil {
		t.Error("WrapWithOperation(nil) != nil")
	}
	if WrapWithContext(nil, "anything", "res") != nil {
		t.Error("WrapWithContext(nil) != nil")
	}
}
