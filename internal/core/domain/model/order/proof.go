package order

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"unicode"

	// Header decoders for the accepted proof formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"topup/internal/pkg/errs"
)

// AllowedProofExtensions lists the image types accepted as proof of payment.
var AllowedProofExtensions = []string{"png", "jpg", "jpeg", "gif"}

// MaxProofPixels bounds width*height of a proof image. The upload limit caps
// compressed bytes only, while decoding allocates per pixel.
const MaxProofPixels = 40_000_000

// ProofDimensionsAllowed reports whether a width x height image fits MaxProofPixels.
func ProofDimensionsAllowed(width, height int) bool {
	return width > 0 && height > 0 && int64(width)*int64(height) <= MaxProofPixels
}

// CheckProofDimensions reads only the image header and rejects images larger
// than MaxProofPixels. Content without a recognizable header passes here; the
// receipt shows a placeholder for it.
func CheckProofDimensions(filename string, data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	if !ProofDimensionsAllowed(cfg.Width, cfg.Height) {
		return errs.NewInvalidMediaErrorWithCause(
			filename,
			fmt.Errorf("image is %dx%d pixels, limit is %d", cfg.Width, cfg.Height, MaxProofPixels),
		)
	}
	return nil
}

// ProofFilename is the sanitized name under which a proof image is stored.
// The zero value means "no proof".
type ProofFilename struct {
	name string
}

// NewProofFilename sanitizes an uploaded filename and checks its extension
// against AllowedProofExtensions (case-insensitive). Directory components are
// dropped, whitespace becomes "_", and anything outside [A-Za-z0-9._-] is removed.
func NewProofFilename(raw string) (ProofFilename, error) {
	if strings.TrimSpace(raw) == "" {
		return ProofFilename{}, errs.NewInvalidMediaErrorWithCause(raw, fmt.Errorf("no file selected"))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(raw), "."))
	if !isAllowedExtension(ext) {
		return ProofFilename{}, errs.NewInvalidMediaErrorWithCause(
			raw,
			fmt.Errorf("extension %q is not one of %s", ext, strings.Join(AllowedProofExtensions, ", ")),
		)
	}

	name := sanitizeFilename(raw)
	if !isAllowedExtension(strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))) {
		return ProofFilename{}, errs.NewInvalidMediaErrorWithCause(raw, fmt.Errorf("filename is empty after sanitizing"))
	}

	return ProofFilename{name: name}, nil
}

// RestoreProofFilename rebuilds a stored reference without re-sanitizing it.
func RestoreProofFilename(name string) (ProofFilename, error) {
	if name == "" || name != sanitizeFilename(name) {
		return ProofFilename{}, errs.NewValueIsInvalidErrorWithCause("proof filename is invalid", fmt.Errorf("%q is not sanitized", name))
	}
	return ProofFilename{name: name}, nil
}

func (p ProofFilename) String() string {
	return p.name
}

// IsZero reports whether no proof is referenced.
func (p ProofFilename) IsZero() bool {
	return p.name == ""
}

func isAllowedExtension(ext string) bool {
	for _, allowed := range AllowedProofExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func sanitizeFilename(raw string) string {
	raw = strings.ReplaceAll(raw, "\\", "/")
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.Join(strings.Fields(raw), "_") {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}
