package config

import (
	"fmt"
	"os"
)

// Problem is a human-readable configuration issue reported by Validate.
type Problem struct {
	Message string
	// Fatal problems stop the process before it serves or runs anything.
	Fatal bool
}

func (p Problem) String() string {
	return p.Message
}

// Validate checks the configuration. A missing password is only a warning;
// a configured driver artifact that does not exist is fatal.
func (c AppConfig) Validate() []Problem {
	var problems []Problem

	if c.Database.Password == "" {
		problems = append(problems, Problem{
			Message: fmt.Sprintf("%s is not set", EnvDBPassword),
		})
	}

	if c.DriverPath != "" {
		if _, err := os.Stat(c.DriverPath); err != nil {
			problems = append(problems, Problem{
				Message: fmt.Sprintf("database driver artifact not found: %s", c.DriverPath),
				Fatal:   true,
			})
		}
	}

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, Problem{
			Message: fmt.Sprintf("%s must be between 1 and 65535, got %d", EnvPort, c.Port),
			Fatal:   true,
		})
	}

	return problems
}

// HasFatal reports whether any problem is fatal.
func HasFatal(problems []Problem) bool {
	for _, p := range problems {
		if p.Fatal {
			return true
		}
	}
	return false
}
