package forms

// IPNFT is one entry in the reference catalog of tokenized patents.
// Selecting one in a wizard auto-fills the dependent patent fields.
type IPNFT struct {
	ID              string `json:"id"`
	InventionName   string `json:"inventionName"`
	PatentNumber    string `json:"patentNumber"`
	Valuation       string `json:"valuation"`
	PublicationYear string `json:"publicationYear"`
}

// ipnftCatalog is the finite reference list the platform exposes. A real
// deployment would load this from the tokenization registry; the set below
// mirrors the seeded demo data.
var ipnftCatalog = []IPNFT{
	{
		ID:              "IP-NFT-001",
		InventionName:   "Graphene Battery Electrode",
		PatentNumber:    "US11,234,567",
		Valuation:       "1250000",
		PublicationYear: "2021",
	},
	{
		ID:              "IP-NFT-002",
		InventionName:   "Nanotechnology Material Process",
		PatentNumber:    "EP2,345,678",
		Valuation:       "890000",
		PublicationYear: "2022",
	},
	{
		ID:              "IP-NFT-003",
		InventionName:   "Quantum Dot Display Coating",
		PatentNumber:    "US10,987,654",
		Valuation:       "2100000",
		PublicationYear: "2020",
	},
}

// IPNFTCatalog returns the reference list for display in select fields.
func IPNFTCatalog() []IPNFT {
	out := make([]IPNFT, len(ipnftCatalog))
	copy(out, ipnftCatalog)
	return out
}

// LookupIPNFT resolves a catalog id to the dependent field values written
// by the auto-fill cascade. The bool is false when the id has no match.
func LookupIPNFT(id string) (Values, bool) {
	for _, n := range ipnftCatalog {
		if n.ID == id {
			return Values{
				"inventionName":   n.InventionName,
				"patentNumber":    n.PatentNumber,
				"valuation":       n.Valuation,
				"publicationYear": n.PublicationYear,
			}, true
		}
	}
	return nil, false
}

func ipnftIDs() []string {
	ids := make([]string, len(ipnftCatalog))
	for i, n := range ipnftCatalog {
		ids[i] = n.ID
	}
	return ids
}
