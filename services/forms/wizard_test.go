package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		w, err := Lookup(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, w.Kind)
		assert.NotEmpty(t, w.Sections)
	}

	_, err := Lookup("mystery")
	assert.Error(t, err)
}

// TestWizardDescriptorsAreCoherent sanity-checks the static catalogs:
// unique section ids, cascade triggers and cross-field references that
// resolve to declared fields, and visible dependent fields with declared
// controllers.
func TestWizardDescriptorsAreCoherent(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		w, err := Lookup(kind)
		require.NoError(t, err)

		sectionIDs := make(map[string]bool)
		for _, sec := range w.Sections {
			assert.False(t, sectionIDs[sec.ID], "%s: duplicate section id %q", kind, sec.ID)
			sectionIDs[sec.ID] = true

			fieldNames := make(map[string]bool)
			for _, f := range sec.Fields {
				assert.False(t, fieldNames[f.Name], "%s/%s: duplicate field %q", kind, sec.ID, f.Name)
				fieldNames[f.Name] = true
			}

			for _, f := range sec.Fields {
				if f.Rule.EqualsField != "" {
					assert.True(t, fieldNames[f.Rule.EqualsField],
						"%s/%s: field %q references unknown field %q", kind, sec.ID, f.Name, f.Rule.EqualsField)
				}
			}

			for _, c := range sec.Cascades {
				assert.True(t, fieldNames[c.Trigger],
					"%s/%s: cascade trigger %q is not a declared field", kind, sec.ID, c.Trigger)
				require.NotNil(t, c.Lookup)
			}
		}
	}
}

// TestPatentVaultCascadeTargetsDeclaredFields verifies the auto-fill for
// the tokenization wizard writes only into fields the section declares.
func TestPatentVaultCascadeTargetsDeclaredFields(t *testing.T) {
	t.Parallel()

	w, err := Lookup(KindPatentVault)
	require.NoError(t, err)

	var patent *Section
	for i := range w.Sections {
		if w.Sections[i].ID == "patent" {
			patent = &w.Sections[i]
		}
	}
	require.NotNil(t, patent)

	filled, ok := LookupIPNFT("IP-NFT-001")
	require.True(t, ok)

	declared := make(map[string]bool)
	for _, f := range patent.Fields {
		declared[f.Name] = true
	}
	for name := range filled {
		if name == "valuation" {
			// Consumed by the loan wizard's collateral section only.
			continue
		}
		assert.True(t, declared[name], "cascade writes undeclared field %q", name)
	}
}

func TestIPNFTCatalog(t *testing.T) {
	t.Parallel()

	catalog := IPNFTCatalog()
	require.NotEmpty(t, catalog)

	_, ok := LookupIPNFT("IP-NFT-002")
	assert.True(t, ok)

	_, ok = LookupIPNFT("IP-NFT-404")
	assert.False(t, ok)
}
