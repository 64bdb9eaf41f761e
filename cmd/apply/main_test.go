package main

import "testing"

func TestResumeFileName(t *testing.T) {
	cases := map[string]string{
		"":                 "7.pdf",
		".":                "7.pdf",
		"..":               "7.pdf",
		"cv.docx":          "cv.docx",
		"../../etc/cv.pdf": "cv.pdf",
	}
	for served, want := range cases {
		if got := resumeFileName("7", served); got != want {
			t.Fatalf("resumeFileName(%q) = %q, want %q", served, got, want)
		}
	}
}
