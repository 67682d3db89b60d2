package upload

import (
	"mime"
	"path/filepath"
	"strings"

	"cropdoc/pkg/errs"
)

// MaxImageBytes is the hard cap on an uploaded photo. Exactly this size is
// still accepted; one byte more is rejected.
const MaxImageBytes = 10 * 1024 * 1024

var allowedMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Validate enforces the upload constraints in order: file present, MIME type
// allowed, size within bound. It has no side effects; callers must not touch
// the inference client before it passes.
func Validate(filename, contentType string, size int64) error {
	if filename == "" || size == 0 {
		return errs.Validation(errs.CodeMissingFile, "no image file in request")
	}
	mt := NormalizeMIME(filename, contentType)
	if _, ok := allowedMIME[mt]; !ok {
		return errs.Validation(errs.CodeUnsupportedType, "only jpeg, png and webp images are accepted")
	}
	if size > MaxImageBytes {
		return errs.Validation(errs.CodeTooLarge, "image exceeds the 10 MiB limit")
	}
	return nil
}

// NormalizeMIME returns the effective content type of an upload, falling back
// to the filename extension when the part header is absent or generic.
func NormalizeMIME(filename, contentType string) string {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "" || mt == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
			mt = byExt
			if i := strings.Index(mt, ";"); i >= 0 {
				mt = strings.TrimSpace(mt[:i])
			}
		}
	}
	if mt == "image/jpg" {
		mt = "image/jpeg"
	}
	return mt
}

// ExtensionForMIME maps an accepted content type to the stored file extension.
func ExtensionForMIME(contentType string) string {
	if ext, ok := allowedMIME[contentType]; ok {
		return ext
	}
	return ".bin"
}
