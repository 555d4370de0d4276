package catalog

// Instrument is one bond record of the catalog. Values are immutable once the
// catalog is built; every field is required.
type Instrument struct {
	ID          string `yaml:"id" json:"id" toml:"id"`
	Description string `yaml:"description" json:"description" toml:"description"`
	ISIN        string `yaml:"isin" json:"isin" toml:"isin"`
	Issuer      string `yaml:"issuer" json:"issuer" toml:"issuer"`
	Maturity    string `yaml:"maturity" json:"maturity" toml:"maturity"`
	Currency    string `yaml:"currency" json:"currency" toml:"currency"`
}

// Fields returns the searchable values in matching order:
// id, description, isin, issuer, maturity, currency.
func (i Instrument) Fields() []string {
	return []string{i.ID, i.Description, i.ISIN, i.Issuer, i.Maturity, i.Currency}
}

// Map returns the record keyed by its serialized field names. It is the shape
// expression filters see.
func (i Instrument) Map() map[string]any {
	return map[string]any{
		"id":          i.ID,
		"description": i.Description,
		"isin":        i.ISIN,
		"issuer":      i.Issuer,
		"maturity":    i.Maturity,
		"currency":    i.Currency,
	}
}
