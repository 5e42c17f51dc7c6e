// Package links builds the external search and prediction urls offered for a structure.
package links

import "net/url"

const (
	pubChemSearchURL     = "https://pubchem.ncbi.nlm.nih.gov/#query="
	nmrPredictorURL      = "https://www.nmrdb.org/new_predictor/index.shtml?v=v2.157.0&smiles="
	drugBankUnearthURL   = "https://go.drugbank.com/unearth/q?searcher=drugs&query="
	drugBankStructureURL = "https://go.drugbank.com/structures/search/small_molecule_drugs/structure?utf8=%E2%9C%93&searcher=structure&structure_search_type=substructure&structure="
)

// PubChemSearch is the PubChem web search for the structure.
func PubChemSearch(smiles string) string {
	return pubChemSearchURL + url.QueryEscape(smiles)
}

// HNMRPrediction is the nmrdb.org 1H NMR predictor for the structure.
func HNMRPrediction(smiles string) string {
	return nmrPredictorURL + url.QueryEscape(smiles)
}

// DrugBankCASSearch is the DrugBank drug search for a CAS registry number.
func DrugBankCASSearch(cas string) string {
	return drugBankUnearthURL + url.QueryEscape(cas)
}

// DrugBankSubstructureSearch is the DrugBank small molecule substructure search.
func DrugBankSubstructureSearch(smiles string) string {
	return drugBankStructureURL + url.QueryEscape(smiles) + "#results"
}
