package forms

import "fmt"

// Wizard kinds offered by the platform.
const (
	KindPatentVault        = "patent-vault"
	KindLoanRequest        = "loan-request"
	KindFundingApplication = "funding-application"
)

// Wizard is the full ordered sequence of sections for one application
// type. Descriptors are static; a session holds the mutable state.
type Wizard struct {
	Kind     string
	Title    string
	Sections []Section
}

// Lookup returns the wizard descriptor for a kind. Adding a new wizard
// means adding a case here and a new wizard_*.go file.
func Lookup(kind string) (Wizard, error) {
	switch kind {
	case KindPatentVault:
		return patentVaultWizard(), nil
	case KindLoanRequest:
		return loanRequestWizard(), nil
	case KindFundingApplication:
		return fundingApplicationWizard(), nil
	default:
		return Wizard{}, fmt.Errorf("unknown wizard kind: %s", kind)
	}
}

// Kinds lists the available wizard kinds.
func Kinds() []string {
	return []string{KindPatentVault, KindLoanRequest, KindFundingApplication}
}
