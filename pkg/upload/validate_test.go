package upload

import (
	"errors"
	"testing"

	"cropdoc/pkg/errs"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantCode    string
	}{
		{"jpeg ok", "leaf.jpg", "image/jpeg", 2 * 1024 * 1024, ""},
		{"png ok", "leaf.png", "image/png", 100, ""},
		{"webp ok", "leaf.webp", "image/webp", 100, ""},
		{"exactly 10MiB ok", "leaf.jpg", "image/jpeg", MaxImageBytes, ""},
		{"one byte over", "leaf.jpg", "image/jpeg", MaxImageBytes + 1, errs.CodeTooLarge},
		{"missing file", "", "", 0, errs.CodeMissingFile},
		{"zero bytes", "leaf.jpg", "image/jpeg", 0, errs.CodeMissingFile},
		{"gif rejected", "leaf.gif", "image/gif", 100, errs.CodeUnsupportedType},
		{"pdf rejected", "doc.pdf", "application/pdf", 100, errs.CodeUnsupportedType},
		{"jpg alias accepted", "leaf.jpg", "image/jpg", 100, ""},
		{"octet-stream falls back to extension", "leaf.png", "application/octet-stream", 100, ""},
		{"octet-stream with bad extension", "notes.txt", "application/octet-stream", 100, errs.CodeUnsupportedType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.filename, tc.contentType, tc.size)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			var ae *errs.AppError
			if !errors.As(err, &ae) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if ae.Code != tc.wantCode {
				t.Fatalf("code = %s, want %s", ae.Code, tc.wantCode)
			}
			if ae.Status != 400 {
				t.Fatalf("status = %d, want 400", ae.Status)
			}
		})
	}
}

func TestExtensionForMIME(t *testing.T) {
	if got := ExtensionForMIME("image/jpeg"); got != ".jpg" {
		t.Fatalf("jpeg ext = %s", got)
	}
	if got := ExtensionForMIME("image/webp"); got != ".webp" {
		t.Fatalf("webp ext = %s", got)
	}
	if got := ExtensionForMIME("text/plain"); got != ".bin" {
		t.Fatalf("fallback ext = %s", got)
	}
}
