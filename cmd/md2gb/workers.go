package main

import (
	"fmt"
	"runtime"

	"github.com/alnah/go-md2gb/internal/config"
)

// maxAutoWorkers caps the worker count derived from GOMAXPROCS.
const maxAutoWorkers = 16

// resolveWorkers determines the number of conversion goroutines.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}

	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
