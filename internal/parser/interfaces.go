package parser

import (
	"context"

	"github.com/toyz/bunner/internal/models"
)

// SourceParser turns one source file into its FileAnalysis
type SourceParser interface {
	Parse(ctx context.Context, filePath string, source []byte) (*models.FileAnalysis, error)
}
