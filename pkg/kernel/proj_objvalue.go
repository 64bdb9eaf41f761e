package kernel

import "strings"

type Email string

func (e Email) String() string { return string(e) }

// Normalized lower-cases and trims the address for comparisons
func (e Email) Normalized() string { return strings.ToLower(strings.TrimSpace(string(e))) }

type JobPosition string

func (j JobPosition) String() string { return string(j) }

// FileURL is the resolvable location of a stored file, e.g. /files/resumes/cv.pdf
type FileURL string

func (f FileURL) String() string { return string(f) }

// BucketURL is a storage path inside the configured file system
type BucketURL string

func (b BucketURL) String() string { return string(b) }
