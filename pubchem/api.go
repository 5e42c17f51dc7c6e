package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/Financial-Times/go-logger/v2"
	tidUtils "github.com/Financial-Times/transactionid-utils-go"
	"github.com/pkg/errors"
)

const (
	// syntheticCID is aspirin, used to check that PubChem is reachable.
	syntheticCID = 2244

	// PubChemBadRequestMsg is the error message used when PubChem rejects the query.
	PubChemBadRequestMsg = "PubChem responded with a client error"
	// PubChemNotFoundMsg is the error message used when PubChem responds with not found.
	PubChemNotFoundMsg = "PubChem responded with not found"
	// PubChemServiceUnavailableMsg is the error message used for any other non-200 status.
	PubChemServiceUnavailableMsg = "PubChem service unavailable"
)

// ErrUnexpectedResponse is wrapped by every APIError.
var ErrUnexpectedResponse = errors.New("PubChem returned a non-200 HTTP status code")

var casPattern = regexp.MustCompile(`^\d+-\d{2}-\d$`)

// APIError encapsulates a non-200 response from PubChem.
type APIError struct {
	msg    string
	status int
	body   []byte
}

// Error returns the error message.
func (e APIError) Error() string {
	return e.msg
}

// Status returns the http status code returned by PubChem.
func (e APIError) Status() int {
	return e.status
}

// Body returns the http response body returned by PubChem.
func (e APIError) Body() []byte {
	return e.body
}

func (e APIError) Unwrap() error {
	return ErrUnexpectedResponse
}

func newAPIError(status int, body []byte) APIError {
	switch status {
	case http.StatusBadRequest:
		return APIError{msg: PubChemBadRequestMsg, status: status, body: body}
	case http.StatusNotFound:
		return APIError{msg: PubChemNotFoundMsg, status: status, body: body}
	default:
		return APIError{msg: PubChemServiceUnavailableMsg, status: status}
	}
}

// API retrieves compound identifiers, properties, synonyms and annotation records from
// the PubChem PUG REST and PUG-View services.
type API struct {
	endpoint   string
	httpClient *http.Client
	log        *logger.UPPLogger
}

// NewAPI initializes API with the given http client and the PubChem REST base url,
// e.g. https://pubchem.ncbi.nlm.nih.gov/rest.
func NewAPI(client *http.Client, endpoint string, log *logger.UPPLogger) *API {
	return &API{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: client,
		log:        log,
	}
}

// ResolveCID returns the first CID PubChem reports for the given SMILES.
// Every failure is logged and reported as not found.
func (api *API) ResolveCID(ctx context.Context, smiles string) (int, bool) {
	if smiles == "" {
		return 0, false
	}

	reqURL := fmt.Sprintf("%s/pug/compound/smiles/%s/cids/JSON", api.endpoint, url.PathEscape(smiles))

	var result IdentifierListResponse
	if err := api.getJSON(ctx, reqURL, &result); err != nil {
		resolveLog := api.requestLog(ctx).WithField("smiles", smiles).WithError(err)
		var apiErr APIError
		if errors.As(err, &apiErr) && apiErr.Status() == http.StatusNotFound {
			resolveLog.Debug("Structure is unknown to PubChem")
		} else {
			resolveLog.Warn("Failed to resolve structure to a PubChem CID")
		}
		return 0, false
	}

	cids := result.IdentifierList.CID
	if len(cids) == 0 || cids[0] <= 0 {
		return 0, false
	}
	return cids[0], true
}

// Synonyms returns the synonyms PubChem lists for the compound, nil when there are none.
func (api *API) Synonyms(ctx context.Context, cid int) ([]string, error) {
	reqURL := fmt.Sprintf("%s/pug/compound/cid/%d/synonyms/JSON", api.endpoint, cid)

	var result SynonymsResponse
	if err := api.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	info := result.InformationList.Information
	if len(info) == 0 {
		return nil, nil
	}
	return info[0].Synonym, nil
}

// CAS returns the first synonym of the compound shaped like a CAS registry number.
func (api *API) CAS(ctx context.Context, cid int) (string, bool, error) {
	synonyms, err := api.Synonyms(ctx, cid)
	if err != nil {
		return "", false, err
	}

	cas, found := FindCAS(synonyms)
	return cas, found, nil
}

// FindCAS returns the first entry matching digits-2digits-1digit that is not an EC number.
func FindCAS(synonyms []string) (string, bool) {
	for _, syn := range synonyms {
		if casPattern.MatchString(syn) && !strings.HasPrefix(syn, "EC") {
			return syn, true
		}
	}
	return "", false
}

// IUPACName returns the IUPAC name PubChem computed for the compound.
func (api *API) IUPACName(ctx context.Context, cid int) (string, bool, error) {
	reqURL := fmt.Sprintf("%s/pug/compound/cid/%d/property/IUPACName/JSON", api.endpoint, cid)

	var result PropertiesResponse
	if err := api.getJSON(ctx, reqURL, &result); err != nil {
		return "", false, err
	}

	props := result.PropertyTable.Properties
	if len(props) == 0 || props[0].IUPACName == "" {
		return "", false, nil
	}
	return props[0].IUPACName, true, nil
}

// Record returns the full PUG-View annotation record of the compound.
func (api *API) Record(ctx context.Context, cid int) (*Record, error) {
	reqURL := fmt.Sprintf("%s/pug_view/data/compound/%d/JSON/", api.endpoint, cid)

	var result RecordResponse
	if err := api.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}
	return &result.Record, nil
}

func (api *API) getJSON(ctx context.Context, reqURL string, v interface{}) error {
	reqLog := api.requestLog(ctx).WithField("url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		reqLog.WithError(err).Error("Error in creating the HTTP request to PubChem")
		return err
	}

	reqLog.Debug("Calling PubChem")
	resp, err := api.httpClient.Do(req)
	if err != nil {
		reqLog.WithError(err).Error("Error making the HTTP request to PubChem")
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read PubChem response body")
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(resp.StatusCode, body)
		reqLog.WithField("status", resp.StatusCode).WithError(apiErr).Debug("Error received from PubChem")
		return apiErr
	}

	if err = json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "failed to unmarshal PubChem response")
	}
	return nil
}

func (api *API) requestLog(ctx context.Context) *logger.LogEntry {
	tid, err := tidUtils.GetTransactionIDFromContext(ctx)
	if err != nil {
		tid = "not_found"
	}
	return api.log.WithTransactionID(tid)
}

// GTG looks up the IUPAC name of a well known compound and checks that PubChem answers.
func (api *API) GTG() error {
	ctx := tidUtils.TransactionAwareContext(context.Background(), tidUtils.NewTransactionID())
	if _, _, err := api.IUPACName(ctx, syntheticCID); err != nil {
		api.requestLog(ctx).WithError(err).Error("PubChem is not good-to-go")
		return fmt.Errorf("GTG: %w", err)
	}
	return nil
}

// Endpoint returns the PubChem REST base url.
func (api *API) Endpoint() string {
	return api.endpoint
}
