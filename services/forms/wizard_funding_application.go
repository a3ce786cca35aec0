package forms

// fundingApplicationWizard defines the governance/funding wizard: a
// project team applies for platform funding, optionally backed by
// external co-investors.
func fundingApplicationWizard() Wizard {
	return Wizard{
		Kind:  KindFundingApplication,
		Title: "Funding Application",
		Sections: []Section{
			{
				ID:          "applicant",
				Title:       "Applicant",
				Description: "Who is applying for funding",
				Fields: []Field{
					{Name: "fullName", Label: "Full name", Kind: KindText, Rule: Rule{Required: true, MinLen: 2, MaxLen: 120}},
					{Name: "email", Label: "Email address", Kind: KindText, Rule: Rule{Required: true, Format: FormatEmail}},
					{Name: "organization", Label: "Organization", Kind: KindText, Rule: Rule{Required: true, MinLen: 2, MaxLen: 160}},
					{Name: "website", Label: "Website", Kind: KindText, Rule: Rule{Format: FormatURL}},
				},
			},
			{
				ID:          "project",
				Title:       "Project",
				Description: "What the funding is for",
				Fields: []Field{
					{Name: "projectName", Label: "Project name", Kind: KindText, Rule: Rule{Required: true, MinLen: 3, MaxLen: 200}},
					{Name: "relatedIpnft", Label: "Related IP-NFT", Kind: KindSelect, Options: ipnftIDs()},
					{Name: "summary", Label: "Project summary", Kind: KindTextarea, Rule: Rule{Required: true, MinLen: 50, MaxLen: 3000}},
					{Name: "stage", Label: "Stage", Kind: KindSelect, Rule: Rule{Required: true},
						Options: []string{"research", "prototype", "pilot", "commercial"}},
				},
			},
			{
				ID:          "funding",
				Title:       "Funding Terms",
				Description: "Amount requested and its use",
				Fields: []Field{
					{Name: "amount", Label: "Amount requested (USD)", Kind: KindNumber,
						Rule: Rule{Required: true, Min: fptr(1000), Max: fptr(5e7)}},
					{Name: "useOfFunds", Label: "Use of funds", Kind: KindTextarea, Rule: Rule{Required: true, MinLen: 30, MaxLen: 2000}},
					{Name: "runwayMonths", Label: "Runway (months)", Kind: KindNumber,
						Rule: Rule{Required: true, Min: fptr(1), Max: fptr(60)}},
				},
			},
			{
				ID:          "co-investors",
				Title:       "Co-Investors",
				Description: "External parties committing alongside the platform",
				Fields: []Field{
					{Name: "hasCoInvestors", Label: "The round has co-investors", Kind: KindToggle},
					{Name: "coInvestorNames", Label: "Co-investor names", Kind: KindText,
						VisibleWhen: WhenTrue("hasCoInvestors"), Rule: Rule{Required: true, MinLen: 3}},
					// The commitment letter appears with co-investors but stays
					// optional: its absence never blocks progression.
					{Name: "commitmentLetter", Label: "Commitment letter", Kind: KindFile,
						VisibleWhen: WhenTrue("hasCoInvestors")},
				},
			},
			{
				ID:          "documents",
				Title:       "Documents",
				Description: "Supporting documentation",
				Fields: []Field{
					{Name: "pitchDeck", Label: "Pitch deck", Kind: KindFile, Rule: Rule{RequireFile: true}},
					{Name: "budget", Label: "Budget breakdown", Kind: KindFile},
				},
			},
			{
				ID:          "declarations",
				Title:       "Declarations",
				Description: "Required attestations",
				Fields: []Field{
					{Name: "accurate", Label: "The information provided is accurate", Kind: KindToggle, Rule: Rule{Required: true}},
					{Name: "termsAccepted", Label: "I accept the funding terms", Kind: KindToggle, Rule: Rule{Required: true}},
				},
			},
		},
	}
}
