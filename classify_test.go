package proofdiff

import "testing"

func TestDetectCodeContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "javascript loop",
			input:    "for (let i = 0; i < items.length; i++) { total += items[i]; }",
			expected: true,
		},
		{
			name:     "go function",
			input:    "func add(a, b int) int {\n\treturn a + b\n}",
			expected: true,
		},
		{
			name:     "single signal with dense operators",
			input:    "x = a; y = b",
			expected: true,
		},
		{
			name:     "plain sentence",
			input:    "The cat sat on the mat.",
			expected: false,
		},
		{
			name:     "prose with a semicolon and the word return",
			input:    "Bring snacks; we leave at noon and return later.",
			expected: false,
		},
		{
			name:     "empty",
			input:    "",
			expected: false,
		},
		{
			name:     "whitespace only",
			input:    " \n\t",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCodeContent(tt.input); got != tt.expected {
				t.Errorf("DetectCodeContent(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectMode(t *testing.T) {
	code := "if (x == 1) { return y; }"
	prose := "Nothing to see here."

	tests := []struct {
		name     string
		source   string
		mode     ContentMode
		expected ContentMode
	}{
		{"auto detects code", code, ModeAuto, ModeCode},
		{"auto detects prose", prose, ModeAuto, ModeProse},
		{"forced prose wins over code", code, ModeProse, ModeProse},
		{"forced code wins over prose", prose, ModeCode, ModeCode},
		{"empty source is prose", "", ModeAuto, ModeProse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMode(tt.source, tt.mode); got != tt.expected {
				t.Errorf("DetectMode(%q, %v) = %v, want %v", tt.source, tt.mode, got, tt.expected)
			}
		})
	}
}

func TestParseContentMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ContentMode
		wantErr  bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"code", ModeCode, false},
		{"Prose", ModeProse, false},
		{" text ", ModeProse, false},
		{"markdown", ModeAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseContentMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContentMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseContentMode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestContentModeStringRoundTrip(t *testing.T) {
	for _, m := range []ContentMode{ModeAuto, ModeCode, ModeProse} {
		got, err := ParseContentMode(m.String())
		if err != nil {
			t.Fatalf("ParseContentMode(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseContentMode(%q) = %v, want %v", m.String(), got, m)
		}
	}
}
