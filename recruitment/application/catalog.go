package application

import (
	"context"
	"slices"
)

var defaultJobPositions = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"UI/UX Designer",
	"DevOps Engineer",
	"Data Scientist",
	"Product Manager",
	"Quality Assurance Engineer",
}

// DefaultJobPositions returns a copy of the built-in catalog
func DefaultJobPositions() []string {
	return slices.Clone(defaultJobPositions)
}

// StaticCatalog serves a fixed list of positions
type StaticCatalog []string

func (c StaticCatalog) JobPositions(ctx context.Context) ([]string, error) {
	return slices.Clone([]string(c)), nil
}
