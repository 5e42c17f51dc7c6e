package links

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pregabalin = "O=C(O)C[C@H](CC(C)C)CN"

func TestLinks(t *testing.T) {
	tests := map[string]struct {
		link     string
		expected string
	}{
		"pubchem search": {
			link:     PubChemSearch(pregabalin),
			expected: "https://pubchem.ncbi.nlm.nih.gov/#query=O%3DC%28O%29C%5BC%40H%5D%28CC%28C%29C%29CN",
		},
		"hnmr prediction": {
			link:     HNMRPrediction("CC#N"),
			expected: "https://www.nmrdb.org/new_predictor/index.shtml?v=v2.157.0&smiles=CC%23N",
		},
		"drugbank cas search": {
			link:     DrugBankCASSearch("50-78-2"),
			expected: "https://go.drugbank.com/unearth/q?searcher=drugs&query=50-78-2",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.link)
		})
	}
}

func TestDrugBankSubstructureSearchRoundTripsStructure(t *testing.T) {
	link := DrugBankSubstructureSearch(pregabalin)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "go.drugbank.com", u.Host)
	assert.Equal(t, "results", u.Fragment)

	q := u.Query()
	assert.Equal(t, pregabalin, q.Get("structure"))
	assert.Equal(t, "substructure", q.Get("structure_search_type"))
	assert.Equal(t, "✓", q.Get("utf8"))
}

func TestHNMRPredictionRoundTripsStructure(t *testing.T) {
	smiles := "CNCCC(C1=CC=CC=C1)OC2=CC=C(C=C2)C(F)(F)F"

	u, err := url.Parse(HNMRPrediction(smiles))
	require.NoError(t, err)
	assert.Equal(t, smiles, u.Query().Get("smiles"))
}
