package query

import (
	"reflect"
	"testing"
)

func tok(kind TokenKind, text string) Token { return Token{Kind: kind, Text: text} }

func TestTokenizeImplicitAnd(t *testing.T) {
	got, err := Tokenize("foo bar")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{tok(Term, "foo"), tok(And, ""), tok(Term, "bar")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v got %v", want, got)
	}

	explicit, err := Tokenize("foo and bar")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !reflect.DeepEqual(got, explicit) {
		t.Errorf("implicit-and tokenisation %v must equal explicit-and %v", got, explicit)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	got, err := Tokenize("foo a bar")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want, err := Tokenize("foo bar")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected dropping 'a' to equal %v, got %v", want, got)
	}
}

func TestTokenizeOrSurvivesShortLengthGate(t *testing.T) {
	got, err := Tokenize("foo or bar")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{tok(Term, "foo"), tok(Or, ""), tok(Term, "bar")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v got %v", want, got)
	}
}

func TestTokenizeTrailingOperatorAfterDropIsInvalid(t *testing.T) {
	if _, err := Tokenize("foo or a"); err != ErrInvalidQuery {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestTokenizeLeadingOperatorIsInvalid(t *testing.T) {
	if _, err := Tokenize("and dartmouth"); err != ErrInvalidQuery {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestTokenizeAdjacentOperatorsInvalid(t *testing.T) {
	if _, err := Tokenize("foo and or bar"); err != ErrInvalidQuery {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestTokenizeNonAlphabeticInvalid(t *testing.T) {
	if _, err := Tokenize("foo123 bar"); err != ErrInvalidQuery {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestTokenizeEmptyInvalid(t *testing.T) {
	if _, err := Tokenize("   "); err != ErrInvalidQuery {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestTokenizeAndKeptAtLengthThree(t *testing.T) {
	got, err := Tokenize("foo and bar")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(got) != 3 || got[1].Kind != And {
		t.Errorf("expected 'and' to survive the length gate naturally, got %v", got)
	}
}
