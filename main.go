package main

import (
	"net/http"
	"os"
	"time"

	api "github.com/Financial-Times/api-endpoint"
	"github.com/Financial-Times/go-ft-http/fthttp"
	"github.com/Financial-Times/go-logger/v2"
	"github.com/Financial-Times/http-handlers-go/v2/httphandlers"
	status "github.com/Financial-Times/service-status-go/httphandlers"
	"github.com/biantailab/compound-lookup-api/handler"
	"github.com/biantailab/compound-lookup-api/health"
	"github.com/biantailab/compound-lookup-api/lookup"
	"github.com/biantailab/compound-lookup-api/presets"
	"github.com/biantailab/compound-lookup-api/pubchem"
	"github.com/gorilla/mux"
	cli "github.com/jawher/mow.cli"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

const appDescription = "Looks up PubChem, DrugBank and Wikipedia data for chemical structures"

func main() {
	app := cli.App("compound-lookup-api", appDescription)

	appSystemCode := app.String(cli.StringOpt{
		Name:   "app-system-code",
		Value:  "compound-lookup-api",
		Desc:   "System Code of the application",
		EnvVar: "APP_SYSTEM_CODE",
	})
	appName := app.String(cli.StringOpt{
		Name:   "app-name",
		Value:  "compound-lookup-api",
		Desc:   "Application name",
		EnvVar: "APP_NAME",
	})
	port := app.String(cli.StringOpt{
		Name:   "port",
		Value:  "8080",
		Desc:   "Port to listen on",
		EnvVar: "APP_PORT",
	})
	pubChemEndpoint := app.String(cli.StringOpt{
		Name:   "pubchem-endpoint",
		Value:  "https://pubchem.ncbi.nlm.nih.gov/rest",
		Desc:   "PubChem PUG REST base url",
		EnvVar: "PUBCHEM_ENDPOINT",
	})
	apiYml := app.String(cli.StringOpt{
		Name:   "api-yml",
		Value:  "./_ft/api.yml",
		Desc:   "Location of the API Swagger YML file.",
		EnvVar: "API_YML",
	})
	httpTimeoutDuration := app.String(cli.StringOpt{
		Name:   "http-timeout",
		Value:  "30s",
		Desc:   "Duration to wait before timing out a lookup",
		EnvVar: "HTTP_TIMEOUT",
	})
	logLevel := app.String(cli.StringOpt{
		Name:   "log-level",
		Value:  "INFO",
		Desc:   "Log level",
		EnvVar: "LOG_LEVEL",
	})

	log := logger.NewUPPInfoLogger(*appSystemCode)
	log.Infof("[Startup] %v is starting", *appSystemCode)

	app.Action = func() {
		log.Infof("System code: %s, App Name: %s, Port: %s", *appSystemCode, *appName, *port)

		// Setting the real log level here in order to have the startup log
		parsedLogLevel, err := logrus.ParseLevel(*logLevel)
		if err != nil {
			log.WithField("logLevel", *logLevel).WithError(err).Error("Incorrect log level. Using INFO instead.")
			parsedLogLevel = logrus.InfoLevel
		}
		log.SetLevel(parsedLogLevel)

		httpTimeout, err := time.ParseDuration(*httpTimeoutDuration)
		if err != nil {
			log.WithError(err).Fatal("Please provide a valid timeout duration")
		}

		ps, err := presets.Load()
		if err != nil {
			log.WithError(err).Fatal("Failed to load the example structures")
		}

		client := fthttp.NewClientWithDefaultTimeout("PAC", *appSystemCode)

		pubChemAPI := pubchem.NewAPI(client, *pubChemEndpoint, log)
		lookupService := lookup.NewService(pubChemAPI, log)
		lookupHandler := handler.New(lookupService, ps, httpTimeout, log)
		healthService := health.NewHealthService(*appSystemCode, *appName, appDescription, pubChemAPI)

		serveEndpoints(*port, apiYml, lookupHandler, healthService, log)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Errorf("App could not start, error=[%s]\n", err)
		return
	}
}

func serveEndpoints(port string, apiYml *string, handler *handler.Handler, healthService *health.HealthService, log *logger.UPPLogger) {
	r := mux.NewRouter()
	handler.RegisterEndpoints(r)

	if apiYml != nil {
		apiEndpoint, err := api.NewAPIEndpointForFile(*apiYml)
		if err != nil {
			log.WithError(err).WithField("file", *apiYml).Warn("Failed to serve the API Endpoint for this service. Please validate the Swagger YML and the file location")
		} else {
			r.HandleFunc(api.DefaultPath, apiEndpoint.ServeHTTP).Methods(http.MethodGet)
		}
	}

	var monitoringRouter http.Handler = r
	monitoringRouter = httphandlers.TransactionAwareRequestLoggingHandler(log, monitoringRouter)
	monitoringRouter = httphandlers.HTTPMetricsHandler(metrics.DefaultRegistry, monitoringRouter)

	http.HandleFunc("/__health", healthService.HealthCheckHandleFunc())
	http.HandleFunc(status.GTGPath, status.NewGoodToGoHandler(healthService.GTG))
	http.HandleFunc(status.BuildInfoPath, status.BuildInfoHandler)

	http.Handle("/", monitoringRouter)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Unable to start: %v", err)
	}
}
