package query

import (
	"fmt"

	"github.com/codepr/tse/internal/index"
)

// ResultDoc is one matching document produced by Evaluate, before ranking
// and metadata enrichment.
type ResultDoc struct {
	DocID int
	Score int
}

// node is the boolean expression AST built by parse, evaluated bottom-up by
// Evaluate. §9 explicitly sanctions a parser+AST approach over the
// reference's single-pass stack machine; both produce identical
// AND-combine/OR-combine semantics.
type node interface {
	eval(ix *index.Index) []ResultDoc
}

type termNode struct{ word string }

func (n termNode) eval(ix *index.Index) []ResultDoc {
	entry, ok := ix.Lookup(n.word)
	if !ok {
		return nil
	}
	postings := entry.Postings()
	docs := make([]ResultDoc, len(postings))
	for i, p := range postings {
		docs[i] = ResultDoc{DocID: p.DocID, Score: p.Count}
	}
	return docs
}

type andNode struct{ left, right node }

func (n andNode) eval(ix *index.Index) []ResultDoc {
	return andCombine(n.left.eval(ix), n.right.eval(ix))
}

type orNode struct{ left, right node }

func (n orNode) eval(ix *index.Index) []ResultDoc {
	return orCombine(n.left.eval(ix), n.right.eval(ix))
}

// andCombine implements §4.3.3's AND-combine: one ResultDoc per doc id
// present in both a and b, scored as min(score_a, score_b). It always
// builds a fresh result list, leaving both operands untouched, unlike the
// reference implementation's in-place mutation (§9's documented quirk we
// deliberately do not reproduce).
func andCombine(a, b []ResultDoc) []ResultDoc {
	bIndex := make(map[int]int, len(b))
	for _, d := range b {
		bIndex[d.DocID] = d.Score
	}
	out := make([]ResultDoc, 0, min(len(a), len(b)))
	for _, d := range a {
		if bScore, ok := bIndex[d.DocID]; ok {
			out = append(out, ResultDoc{DocID: d.DocID, Score: min(d.Score, bScore)})
		}
	}
	return out
}

// orCombine implements §4.3.3's OR-combine: one ResultDoc per doc id
// present in either a or b, scored as the sum of scores when present in
// both.
func orCombine(a, b []ResultDoc) []ResultDoc {
	out := make([]ResultDoc, 0, len(a)+len(b))
	index := make(map[int]int, len(a)+len(b))
	for _, d := range a {
		index[d.DocID] = len(out)
		out = append(out, d)
	}
	for _, d := range b {
		if i, ok := index[d.DocID]; ok {
			out[i].Score += d.Score
		} else {
			index[d.DocID] = len(out)
			out = append(out, d)
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Evaluate parses the already-validated token stream tokens and evaluates
// it against ix, following the and-binds-tighter-than-or precedence of
// §4.3.3.
func Evaluate(tokens []Token, ix *index.Index) ([]ResultDoc, error) {
	p := &parser{tokens: tokens}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected trailing tokens at position %d", p.pos)
	}
	return n.eval(ix), nil
}

// parser is a small recursive-descent parser over the grammar:
//
//	or-expr  := and-expr ( 'or' and-expr )*
//	and-expr := term ( 'and' term )*
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == Or {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == And {
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].Kind != Term {
		return nil, fmt.Errorf("expected term at position %d", p.pos)
	}
	t := p.tokens[p.pos]
	p.pos++
	return termNode{word: t.Text}, nil
}
