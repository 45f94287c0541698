package render

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", FormatSVG, false},
		{"svg", FormatSVG, false},
		{"PNG", FormatPNG, false},
		{".pdf", FormatPDF, false},
		{"gv", FormatDOT, false},
		{"dot", FormatDOT, false},
		{"bmp", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if ContentType(FormatSVG) != "image/svg+xml" {
		t.Error("svg content type")
	}
	if ContentType(FormatDOT) != "text/vnd.graphviz" {
		t.Error("dot content type")
	}
}
