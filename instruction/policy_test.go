package instruction

import (
	"fmt"
	"testing"
)

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(string, ...any) {}

func TestStrictPolicyRejectsUnknownCategory(t *testing.T) {
	_, err := StrictPolicy{}.Resolve(DefaultCatalog(), "nonexistent", NopLogger{})
	if !IsUnknownCategory(err) {
		t.Fatalf("expected unknown_category, got %v", err)
	}
}

func TestStrictPolicyRejectsMissingCategory(t *testing.T) {
	_, err := StrictPolicy{}.Resolve(DefaultCatalog(), "", NopLogger{})
	if !IsUnknownCategory(err) {
		t.Fatalf("expected unknown_category, got %v", err)
	}
}

func TestFallbackPolicyUsesNamedDefault(t *testing.T) {
	logger := &recordingLogger{}
	category, err := FallbackPolicy{Default: CategoryActivity}.Resolve(DefaultCatalog(), "nonexistent", logger)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if category.Key != CategoryActivity {
		t.Fatalf("expected fallback %s, got %s", CategoryActivity, category.Key)
	}
	if len(logger.infos) != 1 {
		t.Fatalf("expected fallback to be logged once, got %d", len(logger.infos))
	}
}

func TestFallbackPolicyKeepsKnownCategory(t *testing.T) {
	logger := &recordingLogger{}
	category, err := FallbackPolicy{Default: CategoryActivity}.Resolve(DefaultCatalog(), CategoryHazardous, logger)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if category.Key != CategoryHazardous {
		t.Fatalf("expected %s, got %s", CategoryHazardous, category.Key)
	}
	if len(logger.infos) != 0 {
		t.Fatalf("expected no fallback log, got %v", logger.infos)
	}
}

func TestFallbackPolicyInvalidDefault(t *testing.T) {
	_, err := FallbackPolicy{Default: "bogus"}.Resolve(DefaultCatalog(), "nonexistent", NopLogger{})
	if !IsUnknownCategory(err) {
		t.Fatalf("expected unknown_category, got %v", err)
	}
}

func TestPolicyFor(t *testing.T) {
	if _, ok := PolicyFor("").(StrictPolicy); !ok {
		t.Fatalf("expected strict policy without fallback")
	}
	policy, ok := PolicyFor(CategoryMachine).(FallbackPolicy)
	if !ok || policy.Default != CategoryMachine {
		t.Fatalf("expected fallback policy to %s, got %#v", CategoryMachine, policy)
	}
}
