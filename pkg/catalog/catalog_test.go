package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func sampleInstruments() []Instrument {
	return []Instrument{
		{ID: "A1", Description: "Alpha 1% Jan 30", ISIN: "US0378331005", Issuer: "Alpha Corp", Maturity: "2030-01-15", Currency: "USD"},
		{ID: "B2", Description: "Beta 2% Feb 31", ISIN: "DE0001102507", Issuer: "Beta AG", Maturity: "2031-02-15", Currency: "EUR"},
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 7, c.Len())

	ids := make([]string, 0, c.Len())
	for _, in := range c.All() {
		ids = append(ids, in.ID)
	}
	assert.Equal(t, []string{"S1001", "S1002", "S1003", "S1004", "S1005", "S1006", "S1007"}, ids)

	bund, ok := c.ByID("S1002")
	require.True(t, ok)
	assert.Equal(t, Instrument{
		ID:          "S1002",
		Description: "Bund 0% Jun 30",
		ISIN:        "DE0001102507",
		Issuer:      "Germany Fed Rep",
		Maturity:    "2030-06-30",
		Currency:    "EUR",
	}, bund)
	assert.Same(t, c, Default())
}

func TestAllReturnsCopy(t *testing.T) {
	c, err := New(sampleInstruments())
	require.NoError(t, err)

	all := c.All()
	all[0].Description = "mutated"
	assert.Equal(t, "Alpha 1% Jan 30", c.At(0).Description)
}

func TestNewCopiesInput(t *testing.T) {
	in := sampleInstruments()
	c, err := New(in)
	require.NoError(t, err)
	in[1].ID = "ZZ"
	_, ok := c.ByID("B2")
	assert.True(t, ok)
}

func TestFirstByDescription(t *testing.T) {
	in := sampleInstruments()
	in = append(in, Instrument{ID: "C3", Description: "Alpha 1% Jan 30", ISIN: "GB00B16NNR78", Issuer: "Gamma plc", Maturity: "2029-03-01", Currency: "GBP"})
	c, err := New(in)
	require.NoError(t, err)

	got, ok := c.FirstByDescription("Alpha 1% Jan 30")
	require.True(t, ok)
	assert.Equal(t, "A1", got.ID, "first match in catalog order wins")

	_, ok = c.FirstByDescription("alpha 1% jan 30")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = c.FirstByDescription("")
	assert.False(t, ok)
}

func TestWhere(t *testing.T) {
	c := Default()
	usd := c.Where(func(in Instrument) bool { return in.Currency == "USD" })
	require.Equal(t, 3, usd.Len())
	assert.Equal(t, "S1001", usd.At(0).ID)
	assert.Equal(t, "S1004", usd.At(1).ID)
	assert.Equal(t, "S1007", usd.At(2).ID)
	_, ok := usd.ByID("S1002")
	assert.False(t, ok)
	assert.Equal(t, 7, c.Len(), "source catalog is unchanged")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Instrument) []Instrument
		want   []error
	}{
		{
			name:   "valid",
			mutate: func(in []Instrument) []Instrument { return in },
		},
		{
			name: "duplicate id",
			mutate: func(in []Instrument) []Instrument {
				in[1].ID = "A1"
				return in
			},
			want: []error{ErrDuplicateID},
		},
		{
			name: "blank description",
			mutate: func(in []Instrument) []Instrument {
				in[0].Description = "   "
				return in
			},
			want: []error{ErrMissingField},
		},
		{
			name: "empty id",
			mutate: func(in []Instrument) []Instrument {
				in[0].ID = ""
				return in
			},
			want: []error{ErrMissingField},
		},
		{
			name: "bad isin",
			mutate: func(in []Instrument) []Instrument {
				in[0].ISIN = "us0378331005"
				return in
			},
			want: []error{ErrInvalidISIN},
		},
		{
			name: "unknown currency",
			mutate: func(in []Instrument) []Instrument {
				in[0].Currency = "XYZ"
				return in
			},
			want: []error{ErrUnknownCurrency},
		},
		{
			name: "bad maturity",
			mutate: func(in []Instrument) []Instrument {
				in[1].Maturity = "20310215"
				return in
			},
			want: []error{ErrInvalidMaturity},
		},
		{
			name: "several problems are all reported",
			mutate: func(in []Instrument) []Instrument {
				in[0].Currency = "XYZ"
				in[1].Maturity = "soon"
				in[1].ID = "A1"
				return in
			},
			want: []error{ErrUnknownCurrency, ErrInvalidMaturity, ErrDuplicateID},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(sampleInstruments()))
			if len(tt.want) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), len(tt.want))
			for _, w := range tt.want {
				assert.True(t, errors.Is(err, w), "expected %v in %v", w, err)
			}
		})
	}
}

func TestISINCheckDigit(t *testing.T) {
	d, err := ISINCheckDigit("US0378331005")
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	d, err = ISINCheckDigit("DE0001102507")
	require.NoError(t, err)
	assert.Equal(t, 7, d)

	_, err = ISINCheckDigit("US03")
	assert.ErrorIs(t, err, ErrInvalidISIN)

	_, err = ISINCheckDigit("US03783310-5")
	assert.ErrorIs(t, err, ErrInvalidISIN)
}

func TestCheckDigitWarnings(t *testing.T) {
	warnings := Default().CheckDigitWarnings()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "S1001")
	assert.Contains(t, warnings[1], "S1004")
	assert.Contains(t, warnings[2], "S1005")
	assert.Contains(t, warnings[3], "S1007")

	c, err := New(sampleInstruments())
	require.NoError(t, err)
	assert.Empty(t, c.CheckDigitWarnings())
}

func TestLoadFormats(t *testing.T) {
	yamlDoc := `instruments:
  - id: A1
    description: Alpha 1% Jan 30
    isin: US0378331005
    issuer: Alpha Corp
    maturity: "2030-01-15"
    currency: USD
`
	jsonDoc := `{"instruments":[{"id":"A1","description":"Alpha 1% Jan 30","isin":"US0378331005","issuer":"Alpha Corp","maturity":"2030-01-15","currency":"USD"}]}`
	tomlDoc := `[[instruments]]
id = "A1"
description = "Alpha 1% Jan 30"
isin = "US0378331005"
issuer = "Alpha Corp"
maturity = "2030-01-15"
currency = "USD"
`
	for format, doc := range map[Format]string{FormatYAML: yamlDoc, FormatJSON: jsonDoc, FormatTOML: tomlDoc} {
		t.Run(string(format), func(t *testing.T) {
			c, err := Load([]byte(doc), format)
			require.NoError(t, err)
			require.Equal(t, 1, c.Len())
			assert.Equal(t, sampleInstruments()[0], c.At(0))
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]byte("instruments: []\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrEmptyCatalogFile)

	_, err = Load([]byte("instruments:\n  - id: A1\n    colour: red\n"), FormatYAML)
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load([]byte(`{"instruments":[{"id":"A1","colour":"red"}]}`), FormatJSON)
	assert.Error(t, err, "unknown json keys are rejected")

	_, err = Load([]byte("[[instruments]]\nid = \"A1\"\ncoupon = \"5%\"\n"), FormatTOML)
	assert.Error(t, err, "unknown toml keys are rejected")

	_, err = Load([]byte(`{"instruments":[{"id":"A1"}]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = Load([]byte("{}"), Format("xml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bonds.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"instruments":[{"id":"B2","description":"Beta 2% Feb 31","isin":"DE0001102507","issuer":"Beta AG","maturity":"2031-02-15","currency":"EUR"}]}`), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "B2", c.At(0).ID)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("x/bonds.JSON"))
	assert.Equal(t, FormatTOML, FormatFromPath("bonds.toml"))
	assert.Equal(t, FormatYAML, FormatFromPath("bonds.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("bonds"))
}

func TestEmbeddedYAMLRoundTrip(t *testing.T) {
	c, err := Load(EmbeddedYAML(), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default().All(), c.All())
}
