// Package pdf renders transaction receipts with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	// Decoders for the accepted proof formats.
	_ "image/gif"
	_ "image/jpeg"

	"topup/internal/core/domain/model/order"
	"topup/internal/core/ports"

	"github.com/go-pdf/fpdf"
	"github.com/nfnt/resize"
)

// Layout in points on a US letter page (612 x 792), origin top left.
const (
	cardX, cardY, cardW, cardH = 50.0, 100.0, 500.0, 300.0
	cardRadius                 = 10.0

	textX         = 70.0
	titleY        = 200.0
	firstFieldY   = 240.0
	fieldSpacing  = 20.0
	captionY      = 430.0
	proofLabelY   = 470.0
	proofBoxX     = 70.0
	proofBoxY     = 485.0
	proofBoxW     = 300.0
	proofBoxH     = 280.0
	proofMaxPixel = 900

	timestampLayout = "2006-01-02 15:04:05 MST"

	// ProofNotFoundText is drawn when the order references a proof that is not in storage.
	ProofNotFoundText = "proof image not found"
	// ProofUnreadableText is drawn when the stored proof cannot be decoded as an image.
	ProofUnreadableText = "proof image could not be read"
)

// Option configures a ReceiptRenderer.
type Option func(*ReceiptRenderer)

// WithCompression toggles stream compression. Receipts are compressed by default.
func WithCompression(enabled bool) Option {
	return func(r *ReceiptRenderer) {
		r.compress = enabled
	}
}

// WithLocation sets the time zone the purchase timestamp is printed in.
// The zone abbreviation is printed with it. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *ReceiptRenderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// ReceiptRenderer implements ports.ReceiptRenderer.
type ReceiptRenderer struct {
	compress bool
	location *time.Location
}

func NewReceiptRenderer(opts ...Option) *ReceiptRenderer {
	r := &ReceiptRenderer{compress: true, location: time.UTC}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the receipt card and, when the order has a proof, the proof
// section below it.
func (r *ReceiptRenderer) Render(receipt ports.Receipt) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(r.compress)
	doc.SetTitle("Transaction "+receipt.OrderID, true)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFillColor(51, 51, 51)
	doc.RoundedRect(cardX, cardY, cardW, cardH, cardRadius, "1234", "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(textX, titleY, "Detail Transaksi")

	doc.SetFont("Helvetica", "", 12)
	fields := []string{
		"Nama Pengguna: " + receipt.BuyerName,
		"Nama Diamond: " + receipt.PackageName,
		"Total Harga: " + receipt.TotalPrice,
		"Tanggal Pembelian: " + receipt.PurchasedAt.In(r.location).Format(timestampLayout),
		"Status: " + receipt.Status,
	}
	for i, field := range fields {
		doc.Text(textX, firstFieldY+float64(i)*fieldSpacing, tr(field))
	}

	doc.SetTextColor(51, 51, 51)
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(textX, captionY, "Informasi Transaksi")

	if receipt.HasProof {
		r.drawProof(doc, receipt.ProofImage)
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", receipt.OrderID, err)
	}
	return out.Bytes(), nil
}

func (r *ReceiptRenderer) drawProof(doc *fpdf.Fpdf, raw []byte) {
	doc.SetFont("Helvetica", "", 12)

	if raw == nil {
		doc.Text(textX, proofLabelY, "Bukti Transfer: "+ProofNotFoundText)
		return
	}

	encoded, width, height, err := normalizeImage(raw)
	if err != nil {
		doc.Text(textX, proofLabelY, "Bukti Transfer: "+ProofUnreadableText)
		return
	}

	doc.Text(textX, proofLabelY, "Bukti Transfer:")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("proof", opts, bytes.NewReader(encoded))
	w, h := fitBox(float64(width), float64(height), proofBoxW, proofBoxH)
	doc.ImageOptions("proof", proofBoxX, proofBoxY, w, h, false, opts, 0, "")
}

// normalizeImage decodes any accepted proof format, shrinks it to at most
// proofMaxPixel on its longer side and re-encodes it as PNG. Images over
// order.MaxProofPixels are refused from the header alone.
func normalizeImage(raw []byte) ([]byte, int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, err
	}
	if !order.ProofDimensionsAllowed(cfg.Width, cfg.Height) {
		return nil, 0, 0, fmt.Errorf("proof image is %dx%d pixels", cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > proofMaxPixel || bounds.Dy() > proofMaxPixel {
		img = resize.Thumbnail(proofMaxPixel, proofMaxPixel, img, resize.Lanczos3)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, 0, 0, err
	}
	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}

// fitBox scales (w, h) to fit inside (boxW, boxH) keeping the aspect ratio.
func fitBox(w, h, boxW, boxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return boxW, boxH
	}
	scale := min(boxW/w, boxH/h)
	return w * scale, h * scale
}
