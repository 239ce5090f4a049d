package domain

import (
	"fmt"
	"regexp"
)

// TradeRecord is one observation of trade volume for a (country, product, period)
// triple. ID is deterministic: <rawCountryCode>-<productCode>-<period>, so
// re-fetching the same triple upserts instead of duplicating.
type TradeRecord struct {
	ID          string `json:"id"`
	Country     string `json:"country"`
	Product     string `json:"product"`
	Category    string `json:"category"`
	ExportValue int64  `json:"exportValue"`
	ImportValue int64  `json:"importValue"`
	Period      string `json:"period"`
}

// Product as supplied by the caller: HS-like classification code plus display metadata.
type Product struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Category string `json:"category"`
}

// Country as supplied by the caller. Code is the raw two-letter code; alias
// normalization (UK -> GB) happens at the external-source boundary.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

// FetchRequest is the input to one external-source query.
type FetchRequest struct {
	Period      string
	ProductCode string
	CountryCode string
}

// FetchOutcome is the parsed result of one successful external call. A pair that
// failed outright is reported through the error return instead.
type FetchOutcome struct {
	ExportValue int64
	ImportValue int64
}

// Total is the combined trade volume; pairs with Total() == 0 are not persisted.
func (o FetchOutcome) Total() int64 {
	return o.ExportValue + o.ImportValue
}

func RecordID(countryCode, productCode, period string) string {
	return fmt.Sprintf("%s-%s-%s", countryCode, productCode, period)
}

var periodRe = regexp.MustCompile(`^\d{4}\.(0[1-9]|1[0-2])$`)

// ValidPeriod reports whether s is a canonical YYYY.MM period string.
func ValidPeriod(s string) bool {
	return periodRe.MatchString(s)
}
