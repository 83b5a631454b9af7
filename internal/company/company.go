// Package company holds the singleton company profile shown on printed
// documents. There is exactly one profile; it is overwritten wholesale on
// save and never created or deleted.
package company

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxImageBytes is the practical ceiling for images stored in a sheet
// cell as a base64 data URL, documented to the user as ~200KB. Oversized
// images are rejected before any write is attempted.
const MaxImageBytes = 200 * 1024

var ErrImageTooLarge = errors.New("company: image exceeds 200KB limit")

// Profile is the company identity plus bank transfer details for receipts.
// Logo and QRCode are base64 data URLs or empty.
type Profile struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	TaxID         string `json:"taxId"`
	Website       string `json:"website"`
	Logo          string `json:"logo,omitempty"`
	QRCode        string `json:"qrCode,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

// Default is the out-of-the-box profile used before anything is saved.
func Default() Profile {
	return Profile{
		Name:    "NIT Consulting Solution LTD.",
		Address: "123 Tech Park, Bangkok 10250",
		Phone:   "02-123-4567",
		Email:   "support@nit.co.th",
		TaxID:   "0105551234567",
		Website: "www.nit.co.th",
	}
}

// ValidateImages rejects profiles whose embedded images would not fit in
// a sheet cell.
func (p Profile) ValidateImages() error {
	for _, img := range []struct {
		field string
		data  string
	}{
		{"logo", p.Logo},
		{"qrCode", p.QRCode},
	} {
		if img.data == "" {
			continue
		}

		if decodedImageSize(img.data) > MaxImageBytes {
			return fmt.Errorf("%s: %w", img.field, ErrImageTooLarge)
		}
	}

	return nil
}

// decodedImageSize estimates the decoded byte size of a data URL. Plain
// strings that are not data URLs are measured as-is.
func decodedImageSize(dataURL string) int {
	_, b64, found := strings.Cut(dataURL, ";base64,")
	if !found {
		return len(dataURL)
	}

	return base64.StdEncoding.DecodedLen(len(b64))
}
