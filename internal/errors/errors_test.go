package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeParseFailed, "syntax error")
		if err.Error() != "[PARSE_FAILED] syntax error" {
			t.Errorf("expected [PARSE_FAILED] syntax error, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("disk gone")
		err := Wrap(original, CodeHistoryIO, "snapshot write failed")
		expected := "[HISTORY_IO] snapshot write failed: disk gone"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeConfigInvalid, "bad threshold")
		if !IsCode(err, CodeConfigInvalid) {
			t.Error("expected IsCode to return true for CodeConfigInvalid")
		}
		if IsCode(err, CodeParseFailed) {
			t.Error("expected IsCode to return false for CodeParseFailed")
		}
	})

	t.Run("AddContextPlainError", func(t *testing.T) {
		err := AddContext(errors.New("boom"), CtxPath, "a/b.py")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected a DomainError")
		}
		if de.Context[CtxPath] != "a/b.py" {
			t.Errorf("expected context path a/b.py, got %v", de.Context[CtxPath])
		}
	})

	t.Run("UnwrapChain", func(t *testing.T) {
		original := errors.New("root cause")
		err := Wrap(original, CodeScanFailed, "walk failed")
		if !errors.Is(err, original) {
			t.Error("expected errors.Is to find the original error")
		}
	})
}
