package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/Financial-Times/go-logger/v2"
	tidUtils "github.com/Financial-Times/transactionid-utils-go"
	"github.com/biantailab/compound-lookup-api/links"
	"github.com/biantailab/compound-lookup-api/pubchem"
)

// DrugBank search modes.
const (
	ModeExact = "exact"
	ModeFuzzy = "fuzzy"
)

var (
	ErrCompoundNotFound  = errors.New("compound not found")
	ErrCASNotFound       = errors.New("CAS number not found")
	ErrIUPACNameNotFound = errors.New("IUPAC name not found")
	ErrWikipediaNotFound = errors.New("Wikipedia link not found")
	ErrDrugBankNotFound  = errors.New("DrugBank ID or CAS number not found")
	ErrInvalidMode       = errors.New("DrugBank search mode must be exact or fuzzy")
)

// PubChemAPI is the part of the PubChem client the lookups depend on.
type PubChemAPI interface {
	ResolveCID(ctx context.Context, smiles string) (int, bool)
	Synonyms(ctx context.Context, cid int) ([]string, error)
	CAS(ctx context.Context, cid int) (string, bool, error)
	IUPACName(ctx context.Context, cid int) (string, bool, error)
	Record(ctx context.Context, cid int) (*pubchem.Record, error)
}

// Result is the outcome of a lookup. Only the fields relevant to the lookup are set.
type Result struct {
	SMILES     string `json:"smiles"`
	CID        int    `json:"cid,omitempty"`
	CAS        string `json:"cas,omitempty"`
	IUPACName  string `json:"iupacName,omitempty"`
	DrugBankID string `json:"drugBankId,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Service resolves a structure to a PubChem compound and runs one lookup against it.
type Service struct {
	pubChem PubChemAPI
	log     *logger.UPPLogger
}

func NewService(api PubChemAPI, log *logger.UPPLogger) *Service {
	return &Service{pubChem: api, log: log}
}

// CID resolves the structure to its PubChem compound identifier.
func (s *Service) CID(ctx context.Context, smiles string) (*Result, error) {
	cid, err := s.resolve(ctx, smiles)
	if err != nil {
		return nil, err
	}
	return &Result{SMILES: smiles, CID: cid}, nil
}

func (s *Service) CAS(ctx context.Context, smiles string) (*Result, error) {
	cid, err := s.resolve(ctx, smiles)
	if err != nil {
		return nil, err
	}

	cas, found, err := s.pubChem.CAS(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCASNotFound
	}
	return &Result{SMILES: smiles, CID: cid, CAS: cas}, nil
}

func (s *Service) IUPACName(ctx context.Context, smiles string) (*Result, error) {
	cid, err := s.resolve(ctx, smiles)
	if err != nil {
		return nil, err
	}

	name, found, err := s.pubChem.IUPACName(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrIUPACNameNotFound
	}
	return &Result{SMILES: smiles, CID: cid, IUPACName: name}, nil
}

// Wikipedia finds the Wikipedia article of the compound in its annotation record.
// When withSynonyms is set the compound's synonyms are matched as titles too.
func (s *Service) Wikipedia(ctx context.Context, smiles string, withSynonyms bool) (*Result, error) {
	cid, err := s.resolve(ctx, smiles)
	if err != nil {
		return nil, err
	}

	record, err := s.pubChem.Record(ctx, cid)
	if err != nil {
		return nil, err
	}

	var synonyms []string
	if withSynonyms {
		synonyms, err = s.pubChem.Synonyms(ctx, cid)
		if err != nil {
			return nil, err
		}
	}

	wikiURL, found := pubchem.FindWikipediaReference(record.Section, record.RecordTitle, synonyms...)
	if !found {
		return nil, ErrWikipediaNotFound
	}
	return &Result{SMILES: smiles, CID: cid, URL: wikiURL}, nil
}

// DrugBank finds the DrugBank page of the structure. The exact mode reads the DrugBank
// accession from the annotation record and falls back to a DrugBank search for the CAS
// number; the fuzzy mode is a DrugBank substructure search. Both modes require the
// structure to be known to PubChem.
func (s *Service) DrugBank(ctx context.Context, smiles string, mode string) (*Result, error) {
	switch mode {
	case ModeExact, "", ModeFuzzy:
	default:
		return nil, fmt.Errorf("%q: %w", mode, ErrInvalidMode)
	}

	cid, err := s.resolve(ctx, smiles)
	if err != nil {
		return nil, err
	}

	if mode == ModeFuzzy {
		return &Result{SMILES: smiles, CID: cid, URL: links.DrugBankSubstructureSearch(smiles)}, nil
	}

	record, err := s.pubChem.Record(ctx, cid)
	if err != nil {
		return nil, err
	}

	if ref, found := pubchem.FindDrugBankReference(record.Section); found {
		return &Result{SMILES: smiles, CID: cid, DrugBankID: ref.ID, URL: ref.URL}, nil
	}

	s.requestLog(ctx).WithField("cid", cid).Debug("No DrugBank ID in the annotation record, searching DrugBank by CAS number")
	cas, found, err := s.pubChem.CAS(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrDrugBankNotFound
	}
	return &Result{SMILES: smiles, CID: cid, CAS: cas, URL: links.DrugBankCASSearch(cas)}, nil
}

func (s *Service) resolve(ctx context.Context, smiles string) (int, error) {
	cid, found := s.pubChem.ResolveCID(ctx, smiles)
	if !found {
		s.requestLog(ctx).WithField("smiles", smiles).Info("Structure not found in PubChem")
		return 0, ErrCompoundNotFound
	}
	return cid, nil
}

func (s *Service) requestLog(ctx context.Context) *logger.LogEntry {
	tid, err := tidUtils.GetTransactionIDFromContext(ctx)
	if err != nil {
		tid = "not_found"
	}
	return s.log.WithTransactionID(tid)
}
