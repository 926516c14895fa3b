// Package index builds and queries the serialized inverted index over
// document titles, excerpts, and labels.
package index

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/registry"
)

// Analyzer wraps the Bleve English analysis pipeline: unicode
// tokenization, lowercasing, English stop words, and snowball English
// stemming. The same pipeline is applied at build and query time so
// stemmed tokens match.
type Analyzer struct {
	inner analysis.Analyzer
}

// NewAnalyzer creates an analyzer backed by Bleve's registered "en"
// analyzer.
func NewAnalyzer() (*Analyzer, error) {
	cache := registry.NewCache()
	inner, err := cache.AnalyzerNamed(en.AnalyzerName)
	if err != nil {
		return nil, fmt.Errorf("index: load english analyzer: %w", err)
	}
	return &Analyzer{inner: inner}, nil
}

// Terms analyzes text and returns the resulting stemmed terms in order.
// Stop words and empty tokens are dropped by the pipeline; empty input
// yields no terms.
func (a *Analyzer) Terms(text string) []string {
	if text == "" {
		return nil
	}

	stream := a.inner.Analyze([]byte(text))
	terms := make([]string, 0, len(stream))
	for _, token := range stream {
		if len(token.Term) == 0 {
			continue
		}
		terms = append(terms, string(token.Term))
	}
	return terms
}
