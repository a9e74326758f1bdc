package writer

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures Execute
type ExecuteOptions struct {
	DryRun bool
	Writer io.Writer // progress lines, defaults to os.Stdout
}

// Execute validates every operation before running any of them, so a bad
// operation leaves all files untouched.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}
