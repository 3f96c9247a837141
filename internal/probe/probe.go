package probe

import (
	"context"

	"webmon/internal/domain"
)

// Checker performs a single check for a given target URL.
type Checker interface {
	Check(ctx context.Context, target string) domain.CheckResult
}
