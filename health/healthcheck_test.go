package health

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	fthealth "github.com/Financial-Times/go-fthealth/v1_1"
	status "github.com/Financial-Times/service-status-go/httphandlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const pubChemEndpoint = "https://pubchem.ncbi.nlm.nih.gov/rest"

func TestHappyHealthCheck(t *testing.T) {
	pubChemAPI := new(ServiceMock)
	pubChemAPI.On("GTG").Return(nil)
	pubChemAPI.On("Endpoint").Return(pubChemEndpoint)

	h := NewHealthService("compound-lookup-api", "Compound Lookup API", "", pubChemAPI)

	req := httptest.NewRequest("GET", "/__health", nil)
	w := httptest.NewRecorder()
	h.HealthCheckHandleFunc()(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result fthealth.HealthResult
	err := json.NewDecoder(resp.Body).Decode(&result)

	assert.NoError(t, err)
	assert.Len(t, result.Checks, 1)
	assert.True(t, result.Ok)

	c := result.Checks[0]
	assert.True(t, c.Ok)
	assert.Equal(t, "check-pubchem-api-health", c.ID)
	assert.Equal(t, "PubChem PUG REST API is healthy", c.CheckOutput)
	assert.Equal(t, "PubChem PUG REST API is not available at https://pubchem.ncbi.nlm.nih.gov/rest", c.TechnicalSummary)

	pubChemAPI.AssertExpectations(t)
}

func TestUnhappyHealthCheckDuePubChemAPI(t *testing.T) {
	pubChemAPI := new(ServiceMock)
	pubChemAPI.On("GTG").Return(errors.New("computer says no"))
	pubChemAPI.On("Endpoint").Return(pubChemEndpoint)

	h := NewHealthService("", "", "", pubChemAPI)

	req := httptest.NewRequest("GET", "/__health", nil)
	w := httptest.NewRecorder()
	h.HealthCheckHandleFunc()(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result fthealth.HealthResult
	err := json.NewDecoder(resp.Body).Decode(&result)

	assert.NoError(t, err)
	assert.Len(t, result.Checks, 1)
	assert.False(t, result.Ok)
	assert.False(t, result.Checks[0].Ok)
	assert.Equal(t, "computer says no", result.Checks[0].CheckOutput)

	pubChemAPI.AssertExpectations(t)
}

func TestHappyGTG(t *testing.T) {
	pubChemAPI := new(ServiceMock)
	pubChemAPI.On("GTG").Return(nil)
	pubChemAPI.On("Endpoint").Return(pubChemEndpoint)

	h := NewHealthService("", "", "", pubChemAPI)

	req := httptest.NewRequest("GET", "/__gtg", nil)
	w := httptest.NewRecorder()
	status.NewGoodToGoHandler(h.GTG)(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	pubChemAPI.AssertExpectations(t)
}

func TestUnhappyGTGDuePubChemAPI(t *testing.T) {
	pubChemAPI := new(ServiceMock)
	pubChemAPI.On("GTG").Return(errors.New("I am not good at all"))
	pubChemAPI.On("Endpoint").Return(pubChemEndpoint)

	h := NewHealthService("", "", "", pubChemAPI)

	req := httptest.NewRequest("GET", "/__gtg", nil)
	w := httptest.NewRecorder()
	status.NewGoodToGoHandler(h.GTG)(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "I am not good at all", string(body))

	pubChemAPI.AssertExpectations(t)
}

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GTG() error {
	args := m.Called()
	return args.Error(0)
}

func (m *ServiceMock) Endpoint() string {
	args := m.Called()
	return args.String(0)
}
