package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"arxml-inspect/internal/core"
	"arxml-inspect/internal/types"
)

// Validate loads the document, checks the model invariants and reports
// its warnings. In strict mode any warning fails validation; the result
// is returned alongside the error so callers can still print it.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	opened, err := s.Open(ctx, OpenRequest{Path: req.Path})
	if err != nil {
		return ValidateResult{}, err
	}
	doc := opened.Document
	if err := core.VerifyModel(ctx, doc); err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{
		Document: doc,
		Warnings: doc.Warnings,
		Counts:   map[types.WarningKind]int{},
	}
	for _, warning := range doc.Warnings {
		result.Counts[warning.Kind]++
	}
	if req.Strict && len(doc.Warnings) > 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("document has %d warnings", len(doc.Warnings)))
	}
	return result, nil
}
