package parser

import (
	"strings"

	"github.com/ukaji3/rostermerge-go/pkg/rostermerge/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultPhrases returns the built-in header phrase table. The registration
// group lists "رقم" ("number") both in Arabic presentation forms, as found in
// PDF-converted sheets, and in regular letters.
func DefaultPhrases() models.PhraseTable {
	return models.PhraseTable{
		models.Registration: {"n° immatricul", "immatricul", "ﺭﻗﻢ", "رقم"},
		models.Name:         {"nom", "prénom", "prenom"},
		models.DayCount:     {"nombre", "jours", "jour"},
		models.Status:       {"situation"},
	}
}

// WindowHeaderPhrases returns the phrases that anchor a fixed-width table in
// window mode.
func WindowHeaderPhrases() []string {
	return []string{"n° immatricul", "nom et pr", "nombre de jours", "situation", "ﺭﻗﻢ", "رقم"}
}

// Classifier maps header text to the field groups it indicates.
// It is immutable and safe for concurrent use.
type Classifier struct {
	phrases [models.NumFieldGroups][]string
}

// NewClassifier builds a classifier from a phrase table. A nil table selects
// DefaultPhrases.
func NewClassifier(table models.PhraseTable) *Classifier {
	if table == nil {
		table = DefaultPhrases()
	}
	c := &Classifier{}
	for g, list := range table {
		if g < 0 || int(g) >= models.NumFieldGroups {
			continue
		}
		c.phrases[g] = foldPhrases(list)
	}
	return c
}

// Classify returns every group whose phrases occur in text. Groups are not
// exclusive: "Nombre de jours" contains both "nom" and "nombre".
func (c *Classifier) Classify(text string) models.GroupSet {
	var set models.GroupSet
	if strings.TrimSpace(text) == "" {
		return set
	}
	folded := foldText(text)
	for _, g := range models.FieldGroups {
		if containsAny(folded, c.phrases[g]) {
			set = set.Add(g)
		}
	}
	return set
}

// foldText normalizes text for case-insensitive matching: compatibility
// composition (folds Arabic presentation forms and decomposed accents) and
// Unicode case folding.
func foldText(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

func foldPhrases(list []string) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		if p = foldText(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(folded string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(folded, p) {
			return true
		}
	}
	return false
}
