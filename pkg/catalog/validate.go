package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"go.uber.org/multierr"
)

var (
	ErrDuplicateID      = errors.New("duplicate instrument id")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidISIN      = errors.New("invalid ISIN")
	ErrUnknownCurrency  = errors.New("unknown currency code")
	ErrInvalidMaturity  = errors.New("invalid maturity date")
	ErrEmptyCatalogFile = errors.New("catalog document has no instruments")
)

// MaturityLayout is the fixed textual form of maturity dates.
const MaturityLayout = "2006-01-02"

// isinRegex checks the ISO 6166 shape: 2 letters, 9 alphanumerics, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// Validate checks every instrument and returns all problems combined, or nil.
func Validate(instruments []Instrument) error {
	var errs error
	seen := make(map[string]int, len(instruments))
	for i, in := range instruments {
		label := fmt.Sprintf("instrument %d", i)
		if in.ID != "" {
			label = fmt.Sprintf("instrument %d (%s)", i, in.ID)
		}
		errs = multierr.Append(errs, validateInstrument(label, in))
		if in.ID == "" {
			continue
		}
		if first, dup := seen[in.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w: also used by instrument %d", label, ErrDuplicateID, first))
			continue
		}
		seen[in.ID] = i
	}
	return errs
}

func validateInstrument(label string, in Instrument) error {
	var errs error
	names := []string{"id", "description", "isin", "issuer", "maturity", "currency"}
	for n, v := range in.Fields() {
		if strings.TrimSpace(v) == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w: %s", label, ErrMissingField, names[n]))
		}
	}
	if in.ISIN != "" && !isinRegex.MatchString(in.ISIN) {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w: %q", label, ErrInvalidISIN, in.ISIN))
	}
	if in.Currency != "" && money.GetCurrency(in.Currency) == nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w: %q", label, ErrUnknownCurrency, in.Currency))
	}
	if in.Maturity != "" {
		if _, err := time.Parse(MaturityLayout, in.Maturity); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w: %q", label, ErrInvalidMaturity, in.Maturity))
		}
	}
	return errs
}

// ISINCheckDigit computes the ISO 6166 check digit over the first eleven
// characters of isin. Letters expand to two digits (A=10 .. Z=35) before the
// Luhn doubling is applied from the right.
func ISINCheckDigit(isin string) (int, error) {
	if len(isin) < 11 {
		return 0, fmt.Errorf("%w: need at least 11 characters, got %d", ErrInvalidISIN, len(isin))
	}
	var digits strings.Builder
	for _, r := range isin[:11] {
		switch {
		case r >= 'A' && r <= 'Z':
			digits.WriteString(strconv.Itoa(int(r-'A') + 10))
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		default:
			return 0, fmt.Errorf("%w: unexpected character %q", ErrInvalidISIN, r)
		}
	}
	s := digits.String()
	sum := 0
	double := true
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
		}
		sum += d/10 + d%10
		double = !double
	}
	return (10 - sum%10) % 10, nil
}

// CheckDigitWarnings lists instruments whose ISIN check digit does not match.
// A mismatch is reported, never rejected.
func (c *Catalog) CheckDigitWarnings() []string {
	var out []string
	for _, in := range c.instruments {
		want, err := ISINCheckDigit(in.ISIN)
		if err != nil {
			out = append(out, fmt.Sprintf("%s: %v", in.ID, err))
			continue
		}
		if got := int(in.ISIN[len(in.ISIN)-1] - '0'); got != want {
			out = append(out, fmt.Sprintf("%s: ISIN %s check digit %d, expected %d", in.ID, in.ISIN, got, want))
		}
	}
	return out
}
