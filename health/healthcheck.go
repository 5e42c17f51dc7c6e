package health

import (
	"fmt"
	"net/http"

	fthealth "github.com/Financial-Times/go-fthealth/v1_1"
	"github.com/Financial-Times/service-status-go/gtg"
)

type service interface {
	Endpoint() string
	GTG() error
}

type HealthService struct {
	fthealth.HealthCheck
	pubChemAPI service
}

func NewHealthService(appSystemCode string, appName string, appDescription string, pubChemAPI service) *HealthService {
	hcService := &HealthService{
		pubChemAPI: pubChemAPI,
	}
	hcService.SystemCode = appSystemCode
	hcService.Name = appName
	hcService.Description = appDescription
	hcService.Checks = []fthealth.Check{
		hcService.pubChemAPICheck(),
	}
	return hcService
}

func (service *HealthService) HealthCheckHandleFunc() func(w http.ResponseWriter, r *http.Request) {
	return fthealth.Handler(service)
}

func (service *HealthService) pubChemAPICheck() fthealth.Check {
	return fthealth.Check{
		ID:               "check-pubchem-api-health",
		BusinessImpact:   "Impossible to look up CAS numbers, IUPAC names, DrugBank and Wikipedia links for structures",
		Name:             "Check PubChem PUG REST API Health",
		PanicGuide:       "https://pubchem.ncbi.nlm.nih.gov/docs/pug-rest",
		Severity:         2,
		TechnicalSummary: fmt.Sprintf("PubChem PUG REST API is not available at %v", service.pubChemAPI.Endpoint()),
		Checker:          service.pubChemAPIChecker,
	}
}

func (service *HealthService) pubChemAPIChecker() (string, error) {
	if err := service.pubChemAPI.GTG(); err != nil {
		return "", err
	}
	return "PubChem PUG REST API is healthy", nil
}

func (service *HealthService) GTG() gtg.Status {
	for _, check := range service.Checks {
		if _, err := check.Checker(); err != nil {
			return gtg.Status{GoodToGo: false, Message: err.Error()}
		}
	}
	return gtg.Status{GoodToGo: true}
}
