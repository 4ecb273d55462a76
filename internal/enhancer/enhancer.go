// Package enhancer rewrites a user message with bracketed context tags
// derived from the classifier.
package enhancer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quanty-ai/quanty/internal/nlp"
	"github.com/quanty-ai/quanty/internal/platform"
)

var ErrInvalidInput = errors.New("enhancer: input is not valid UTF-8")

type Result struct {
	Original string       `json:"original"`
	Enhanced string       `json:"enhanced"`
	Analysis nlp.Analysis `json:"analysis"`
}

type Enhancer struct {
	classifier *nlp.Classifier
}

func New(classifier *nlp.Classifier) *Enhancer {
	return &Enhancer{classifier: classifier}
}

// Enhance prefixes text with tags in a fixed order. Each step wraps the
// previous one, so the last tag applied ends up first in the output.
func (e *Enhancer) Enhance(text string) (Result, error) {
	if !utf8.ValidString(text) {
		return Result{}, ErrInvalidInput
	}

	analysis := e.classifier.Process(text)
	enhanced := text

	if top, ok := analysis.TopSoftware(); ok {
		enhanced = fmt.Sprintf("[%s CONTEXT] %s", strings.ToUpper(top.Software), enhanced)
	}
	if analysis.HasIntent(nlp.IntentTutorial) {
		enhanced = "[TUTORIAL REQUEST] " + enhanced
	}
	if analysis.HasIntent(nlp.IntentTroubleshoot) {
		enhanced = "[TROUBLESHOOTING] " + enhanced
	}
	switch analysis.Complexity {
	case nlp.High:
		enhanced = "[ADVANCED] " + enhanced
	case nlp.Low:
		enhanced = "[BEGINNER] " + enhanced
	}

	return Result{
		Original: text,
		Enhanced: enhanced,
		Analysis: analysis,
	}, nil
}

// EnhanceFor is Enhance plus an outermost client platform tag when the
// platform is known.
func (e *Enhancer) EnhanceFor(text string, os platform.OS) (Result, error) {
	res, err := e.Enhance(text)
	if err != nil {
		return Result{}, err
	}
	if os != "" && os != platform.Unknown {
		res.Enhanced = fmt.Sprintf("[%s] %s", strings.ToUpper(string(os)), res.Enhanced)
	}
	return res, nil
}
