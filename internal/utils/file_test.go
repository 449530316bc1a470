package utils

import "testing"

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"resume.pdf", ".pdf"},
		{"Resume.PDF", ".pdf"},
		{"cover.letter.DOCX", ".docx"},
		{"notes.txt", ".txt"},
		{"noextension", ""},
		{"archive.tar.gz", ".gz"},
		{".hidden", ".hidden"},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.expected {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.expected {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.expected)
		}
	}
}
