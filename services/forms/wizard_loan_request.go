package forms

// loanRequestWizard defines the lending wizard: an IP-NFT holder borrows
// against a tokenized patent. The collateral section auto-fills from the
// IP-NFT catalog.
func loanRequestWizard() Wizard {
	return Wizard{
		Kind:  KindLoanRequest,
		Title: "Loan Request",
		Sections: []Section{
			{
				ID:          "borrower",
				Title:       "Borrower",
				Description: "Who is requesting the loan",
				Fields: []Field{
					{Name: "fullName", Label: "Full name", Kind: KindText, Rule: Rule{Required: true, MinLen: 2, MaxLen: 120}},
					{Name: "email", Label: "Email address", Kind: KindText, Rule: Rule{Required: true, Format: FormatEmail}},
					{Name: "walletAddress", Label: "Wallet address", Kind: KindText, Rule: Rule{Required: true, MinLen: 8}},
				},
			},
			{
				ID:          "collateral",
				Title:       "Collateral",
				Description: "The IP-NFT pledged against the loan",
				Fields: []Field{
					{Name: "ipnftId", Label: "IP-NFT", Kind: KindSelect, Options: ipnftIDs(), Rule: Rule{Required: true}},
					{Name: "inventionName", Label: "Invention name", Kind: KindText, AutoFill: true, Rule: Rule{Required: true}},
					{Name: "patentNumber", Label: "Patent number", Kind: KindText, AutoFill: true, Rule: Rule{Required: true}},
					{Name: "valuation", Label: "Collateral valuation (USD)", Kind: KindNumber, AutoFill: true,
						Rule: Rule{Required: true, Min: fptr(1000)}},
				},
				Cascades: []Cascade{
					{Trigger: "ipnftId", Lookup: LookupIPNFT},
				},
			},
			{
				ID:          "terms",
				Title:       "Loan Terms",
				Description: "Amount and duration requested",
				Fields: []Field{
					{Name: "amount", Label: "Loan amount (USD)", Kind: KindNumber,
						Rule: Rule{Required: true, Min: fptr(500), Max: fptr(1e8)}},
					{Name: "termMonths", Label: "Term (months)", Kind: KindNumber,
						Rule: Rule{Required: true, Min: fptr(1), Max: fptr(120)}},
					{Name: "purpose", Label: "Purpose", Kind: KindTextarea, Rule: Rule{Required: true, MinLen: 20, MaxLen: 1000}},
				},
			},
			{
				ID:          "repayment",
				Title:       "Repayment Plan",
				Description: "How the loan will be serviced",
				Fields: []Field{
					{Name: "repaymentSource", Label: "Repayment source", Kind: KindSelect, Rule: Rule{Required: true},
						Options: []string{"licensing-revenue", "product-sales", "refinancing", "other"}},
					{Name: "otherSource", Label: "Other source", Kind: KindText,
						VisibleWhen: WhenEquals("repaymentSource", "other"), Rule: Rule{Required: true, MinLen: 5}},
					{Name: "payoutAccount", Label: "Payout account", Kind: KindText, Rule: Rule{Required: true, MinLen: 6}},
					{Name: "payoutAccountConfirm", Label: "Confirm payout account", Kind: KindText,
						Rule: Rule{Required: true, EqualsField: "payoutAccount"}},
				},
			},
			{
				ID:          "documents",
				Title:       "Documents",
				Description: "Supporting documentation",
				Fields: []Field{
					{Name: "incomeStatement", Label: "Income statement", Kind: KindFile, Rule: Rule{RequireFile: true}},
					{Name: "licensingAgreements", Label: "Licensing agreements", Kind: KindFile},
				},
			},
			{
				ID:          "declarations",
				Title:       "Declarations",
				Description: "Required attestations",
				Fields: []Field{
					{Name: "collateralUnpledged", Label: "The collateral is not pledged elsewhere", Kind: KindToggle, Rule: Rule{Required: true}},
					{Name: "termsAccepted", Label: "I accept the lending terms", Kind: KindToggle, Rule: Rule{Required: true}},
				},
			},
		},
	}
}
