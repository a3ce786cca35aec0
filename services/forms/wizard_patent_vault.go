package forms

import "regexp"

var patentNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9,./-]{4,}$`)

func fptr(f float64) *float64 { return &f }

// patentVaultWizard defines the tokenization wizard: a patent owner
// submits an invention into the vault to mint an IP-NFT. The patent
// section auto-fills from the IP-NFT catalog when an existing token is
// referenced as prior art.
func patentVaultWizard() Wizard {
	return Wizard{
		Kind:  KindPatentVault,
		Title: "Patent Vault Submission",
		Sections: []Section{
			{
				ID:          "applicant",
				Title:       "Applicant",
				Description: "Who is submitting this patent",
				Fields: []Field{
					{Name: "fullName", Label: "Full name", Kind: KindText, Rule: Rule{Required: true, MinLen: 2, MaxLen: 120}},
					{Name: "email", Label: "Email address", Kind: KindText, Rule: Rule{Required: true, Format: FormatEmail}},
					{Name: "phone", Label: "Phone number", Kind: KindText, Rule: Rule{Format: FormatPhone}},
					{Name: "organization", Label: "Organization", Kind: KindText, Rule: Rule{MaxLen: 160}},
				},
			},
			{
				ID:          "patent",
				Title:       "Patent Details",
				Description: "The invention being tokenized",
				Fields: []Field{
					{Name: "priorIpnft", Label: "Related IP-NFT", Kind: KindSelect, Options: ipnftIDs()},
					{Name: "inventionName", Label: "Invention name", Kind: KindText, AutoFill: true, Rule: Rule{Required: true, MinLen: 3, MaxLen: 200}},
					{Name: "patentNumber", Label: "Patent number", Kind: KindText, AutoFill: true, Rule: Rule{Required: true, Pattern: patentNumberPattern}},
					{Name: "publicationYear", Label: "Publication year", Kind: KindText, AutoFill: true, Rule: Rule{Required: true, Format: FormatYear}},
					{Name: "category", Label: "Technology category", Kind: KindSelect, Rule: Rule{Required: true},
						Options: []string{"biotech", "nanotech", "software", "energy", "others"}},
					{Name: "otherCategory", Label: "Other category", Kind: KindText,
						VisibleWhen: WhenEquals("category", "others"), Rule: Rule{Required: true, MinLen: 3}},
					{Name: "abstract", Label: "Abstract", Kind: KindTextarea, Rule: Rule{Required: true, MinLen: 50, MaxLen: 2000}},
				},
				Cascades: []Cascade{
					{Trigger: "priorIpnft", Lookup: LookupIPNFT},
				},
			},
			{
				ID:          "co-owners",
				Title:       "Co-Owners",
				Description: "Other parties holding rights to the patent",
				Fields: []Field{
					{Name: "hasCoOwners", Label: "Patent has co-owners", Kind: KindToggle},
					{Name: "coOwners", Label: "Co-owners", Kind: KindGroup,
						VisibleWhen: WhenTrue("hasCoOwners"), Rule: Rule{Required: true, MaxLen: 10}},
				},
			},
			{
				ID:          "valuation",
				Title:       "Valuation",
				Description: "Declared value of the patent",
				Fields: []Field{
					{Name: "valuation", Label: "Valuation (USD)", Kind: KindNumber,
						Rule: Rule{Required: true, Min: fptr(1000), Max: fptr(1e9)}},
					{Name: "valuationBasis", Label: "Valuation basis", Kind: KindSelect, Rule: Rule{Required: true},
						Options: []string{"independent-appraisal", "comparable-sales", "income-projection"}},
					{Name: "appraisalURL", Label: "Appraisal report link", Kind: KindText,
						VisibleWhen: WhenEquals("valuationBasis", "independent-appraisal"),
						Rule:        Rule{Required: true, Format: FormatURL}},
				},
			},
			{
				ID:          "fractionalization",
				Title:       "Fractionalization",
				Description: "Optional split of the IP-NFT into fungible shares",
				Fields: []Field{
					{Name: "fractionalize", Label: "Enable fractionalization", Kind: KindToggle},
					{Name: "totalSupply", Label: "Total share supply", Kind: KindNumber,
						VisibleWhen: WhenTrue("fractionalize"),
						Rule:        Rule{Required: true, Min: fptr(100), Max: fptr(1e8)}},
					{Name: "initialPrice", Label: "Initial share price (USD)", Kind: KindNumber,
						VisibleWhen: WhenTrue("fractionalize"),
						Rule:        Rule{Required: true, Min: fptr(0.01)}},
				},
			},
			{
				ID:          "documents",
				Title:       "Documents",
				Description: "Supporting documentation",
				Fields: []Field{
					{Name: "patentCertificate", Label: "Patent certificate", Kind: KindFile, Rule: Rule{RequireFile: true}},
					{Name: "assignmentDeed", Label: "Assignment deed", Kind: KindFile},
				},
			},
			{
				ID:          "declarations",
				Title:       "Legal Declarations",
				Description: "Required attestations",
				Fields: []Field{
					{Name: "ownershipDeclared", Label: "I declare sole or joint ownership", Kind: KindToggle, Rule: Rule{Required: true}},
					{Name: "noEncumbrance", Label: "The patent is free of encumbrances", Kind: KindToggle, Rule: Rule{Required: true}},
					{Name: "termsAccepted", Label: "I accept the vault terms", Kind: KindToggle, Rule: Rule{Required: true}},
				},
			},
			{
				ID:          "review",
				Title:       "Review & Confirm",
				Description: "Check your answers before submitting",
				Fields: []Field{
					{Name: "confirmed", Label: "Everything above is accurate", Kind: KindToggle, Rule: Rule{Required: true}},
				},
			},
		},
	}
}
