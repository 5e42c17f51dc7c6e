package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Financial-Times/go-logger/v2"
	tidutils "github.com/Financial-Times/transactionid-utils-go"
	"github.com/biantailab/compound-lookup-api/links"
	"github.com/biantailab/compound-lookup-api/lookup"
	"github.com/biantailab/compound-lookup-api/presets"
	"github.com/biantailab/compound-lookup-api/pubchem"
	"github.com/gorilla/mux"
)

const (
	smilesParam   = "smiles"
	modeParam     = "mode"
	synonymsParam = "synonyms"
	redirectParam = "redirect"
)

// Lookup runs the compound lookups behind the endpoints.
type Lookup interface {
	CID(ctx context.Context, smiles string) (*lookup.Result, error)
	CAS(ctx context.Context, smiles string) (*lookup.Result, error)
	IUPACName(ctx context.Context, smiles string) (*lookup.Result, error)
	Wikipedia(ctx context.Context, smiles string, withSynonyms bool) (*lookup.Result, error)
	DrugBank(ctx context.Context, smiles string, mode string) (*lookup.Result, error)
}

// Handler provides the compound lookup, external link and preset endpoints.
type Handler struct {
	lookup  Lookup
	presets []presets.Preset
	timeout time.Duration
	log     *logger.UPPLogger
}

// New initializes Handler.
func New(l Lookup, p []presets.Preset, httpTimeout time.Duration, log *logger.UPPLogger) *Handler {
	return &Handler{
		lookup:  l,
		presets: p,
		timeout: httpTimeout,
		log:     log,
	}
}

// RegisterEndpoints adds the handler's routes to the router.
func (h *Handler) RegisterEndpoints(r *mux.Router) {
	r.HandleFunc("/compounds/cid", h.GetCID).Methods(http.MethodGet)
	r.HandleFunc("/compounds/cas", h.GetCAS).Methods(http.MethodGet)
	r.HandleFunc("/compounds/iupac-name", h.GetIUPACName).Methods(http.MethodGet)
	r.HandleFunc("/compounds/wikipedia", h.GetWikipedia).Methods(http.MethodGet)
	r.HandleFunc("/compounds/drugbank", h.GetDrugBank).Methods(http.MethodGet)
	r.HandleFunc("/links/pubchem", h.GetPubChemLink).Methods(http.MethodGet)
	r.HandleFunc("/links/hnmr", h.GetHNMRLink).Methods(http.MethodGet)
	r.HandleFunc("/presets", h.GetPresets).Methods(http.MethodGet)
}

// GetCID resolves the structure to its PubChem CID.
func (h *Handler) GetCID(w http.ResponseWriter, r *http.Request) {
	h.serveLookup(w, r, h.lookup.CID)
}

// GetCAS returns the CAS registry number of the structure.
func (h *Handler) GetCAS(w http.ResponseWriter, r *http.Request) {
	h.serveLookup(w, r, h.lookup.CAS)
}

// GetIUPACName returns the IUPAC name of the structure.
func (h *Handler) GetIUPACName(w http.ResponseWriter, r *http.Request) {
	h.serveLookup(w, r, h.lookup.IUPACName)
}

// GetWikipedia returns the Wikipedia article of the structure.
func (h *Handler) GetWikipedia(w http.ResponseWriter, r *http.Request) {
	withSynonyms, _ := strconv.ParseBool(r.URL.Query().Get(synonymsParam))
	h.serveLookup(w, r, func(ctx context.Context, smiles string) (*lookup.Result, error) {
		return h.lookup.Wikipedia(ctx, smiles, withSynonyms)
	})
}

// GetDrugBank returns the DrugBank page or search of the structure.
func (h *Handler) GetDrugBank(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get(modeParam)
	h.serveLookup(w, r, func(ctx context.Context, smiles string) (*lookup.Result, error) {
		return h.lookup.DrugBank(ctx, smiles, mode)
	})
}

// GetPubChemLink returns the PubChem web search of the structure.
func (h *Handler) GetPubChemLink(w http.ResponseWriter, r *http.Request) {
	h.serveLookup(w, r, func(_ context.Context, smiles string) (*lookup.Result, error) {
		return &lookup.Result{SMILES: smiles, URL: links.PubChemSearch(smiles)}, nil
	})
}

// GetHNMRLink returns the 1H NMR prediction of the structure.
func (h *Handler) GetHNMRLink(w http.ResponseWriter, r *http.Request) {
	h.serveLookup(w, r, func(_ context.Context, smiles string) (*lookup.Result, error) {
		return &lookup.Result{SMILES: smiles, URL: links.HNMRPrediction(smiles)}, nil
	})
}

// GetPresets lists the example structures.
func (h *Handler) GetPresets(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Content-Type", "application/json")

	ps := h.presets
	if ps == nil {
		ps = []presets.Preset{}
	}
	if err := json.NewEncoder(w).Encode(ps); err != nil {
		h.log.WithError(err).Error("Failed to encode presets response")
	}
}

func (h *Handler) serveLookup(w http.ResponseWriter, r *http.Request, do func(context.Context, string) (*lookup.Result, error)) {
	smiles := r.URL.Query().Get(smilesParam)
	tID := tidutils.GetTransactionIDFromRequest(r)

	ctx, cancel := context.WithTimeout(tidutils.TransactionAwareContext(context.Background(), tID), h.timeout)
	defer cancel()

	lookupLog := h.log.WithTransactionID(tID).WithField("path", r.URL.Path).WithField(smilesParam, smiles)

	w.Header().Add("Content-Type", "application/json")

	if smiles == "" {
		writeMessage(w, "Missing smiles query parameter", http.StatusBadRequest, lookupLog)
		return
	}

	result, err := do(ctx, smiles)
	if err != nil {
		handleErrors(ctx, err, w, lookupLog)
		return
	}

	if redirect, _ := strconv.ParseBool(r.URL.Query().Get(redirectParam)); redirect && result.URL != "" {
		lookupLog.WithField("url", result.URL).Debug("Redirecting to lookup result")
		w.Header().Del("Content-Type")
		http.Redirect(w, r, result.URL, http.StatusFound)
		return
	}

	if err = json.NewEncoder(w).Encode(result); err != nil {
		lookupLog.WithError(err).Error("Failed to encode response")
	}
}

func handleErrors(ctx context.Context, err error, w http.ResponseWriter, lookupLog *logger.LogEntry) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeoutErr(err) {
		lookupLog.WithError(err).Error("Timeout while looking up compound.")
		writeMessage(w, "Timeout while looking up compound", http.StatusGatewayTimeout, lookupLog)
		return
	}

	switch {
	case errors.Is(err, lookup.ErrInvalidMode):
		writeMessage(w, err.Error(), http.StatusBadRequest, lookupLog)
		return
	case isNotFound(err):
		lookupLog.WithError(err).Info("Lookup found nothing")
		writeMessage(w, err.Error(), http.StatusNotFound, lookupLog)
		return
	}

	var apiErr pubchem.APIError
	if errors.As(err, &apiErr) {
		lookupLog.WithError(err).WithField("status", apiErr.Status()).Error("PubChem call failed")
		writeMessage(w, "Failed to fetch from PubChem", http.StatusServiceUnavailable, lookupLog)
		return
	}

	lookupLog.WithError(err).Error("Failed to look up compound")
	writeMessage(w, fmt.Sprintf("Failed to look up compound: %v", err), http.StatusInternalServerError, lookupLog)
}

func isNotFound(err error) bool {
	for _, notFound := range []error{
		lookup.ErrCompoundNotFound,
		lookup.ErrCASNotFound,
		lookup.ErrIUPACNameNotFound,
		lookup.ErrWikipediaNotFound,
		lookup.ErrDrugBankNotFound,
	} {
		if errors.Is(err, notFound) {
			return true
		}
	}
	return false
}

func isTimeoutErr(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func writeMessage(w http.ResponseWriter, msg string, status int, lookupLog *logger.LogEntry) {
	w.WriteHeader(status)

	message := make(map[string]interface{})
	message["message"] = msg
	j, err := json.Marshal(&message)

	if err != nil {
		lookupLog.WithError(err).Error("Failed to parse provided message to json, this is a bug.")
		return
	}

	_, err = w.Write(j)
	if err != nil {
		lookupLog.WithError(err).Error("Failed to write response message.")
	}
}
