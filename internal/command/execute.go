package command

import (
	"context"
	"errors"
	"fmt"
)

// ErrorTitle replaces the suggestion title after a validation failure.
const ErrorTitle = "An error has occurred"

// ValidationError reports user input that can be corrected in place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid returns a *ValidationError with a formatted message.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Execute runs c against tokens.
//
// Run is only called when tokens reach past c. A validation failure is
// reported through the forced fields and the host is asked to show the
// original query again so the user can fix it. Other Run errors are
// returned to the caller as is. Unless Run asked otherwise, the host is
// then pointed at c's own path.
func (c *Command) Execute(ctx context.Context, tokens []string) (Result, error) {
	var res Result
	var keep bool
	if len(tokens) > c.depth && c.Run != nil {
		out, err := c.Run(ctx, c, tokens)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return Result{}, fmt.Errorf("%s: %w", c.CommandPath(), err)
			}
			c.logger().Warn("invalid input", "command", c.CommandPath(), "error", verr.Message)
			c.changeQuery(c.RootQuery(tokens))
			return Result{
				ForcedTitle:    ErrorTitle,
				ForcedSubtitle: verr.Message,
			}, nil
		}
		res.Hide = out.Hide
		keep = out.KeepQuery
		c.logger().Debug("executed", "command", c.CommandPath(), "hide", out.Hide)
	}
	if !keep {
		c.changeQuery(c.CommandPath())
	}
	return res, nil
}

func (c *Command) changeQuery(query string) {
	if c.plugin == nil || c.plugin.Host == nil {
		return
	}
	c.plugin.Host.ChangeQuery(query, false)
}
