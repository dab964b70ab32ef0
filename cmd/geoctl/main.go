package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	_ "github.com/evyataryagoni/ipgeo/docs" // Swagger docs
	"github.com/evyataryagoni/ipgeo/internal/config"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/provider"
	"github.com/evyataryagoni/ipgeo/internal/service"
	"github.com/goccy/go-json"
	"github.com/swaggo/swag"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New(
		"geoctl",
		"Command line companion of the IP geolocation service")

	debug = app.Flag("debug", "Log provider traffic.").
		Short('d').
		Bool()

	lookupCmd = app.Command("lookup", "Geolocate an IP address, or this machine when none is given.")
	lookupIP  = lookupCmd.Arg("ip", "IPv4 or IPv6 address.").
			String()
	lookupProvider = lookupCmd.Flag("provider", "One of: "+providerList()+".").
			Short('p').
			Default(models.DefaultProvider.String()).
			String()

	openapiCmd = app.Command("openapi", "Write the OpenAPI document of the HTTP API.")
	openapiOut = openapiCmd.Flag("out", "Output path.").
			Short('o').
			Default("openapi/openapi.generated.json").
			String()
)

func init() {
	app.Version("0.1.0")
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	switch command {
	case lookupCmd.FullCommand():
		err = lookupCommand()
	case openapiCmd.FullCommand():
		err = writeOpenAPI(*openapiOut)
		if err == nil {
			fmt.Fprintf(os.Stderr, "OpenAPI document written to %s\n", *openapiOut)
		}
	}

	app.FatalIfError(err, "%s failed", command)
}

func lookupCommand() error {
	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	logConfig := appConfig.Logger()
	logConfig.Level = "warn"
	if *debug {
		logConfig.Level = "debug"
	}
	appLogger := logger.New(logConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := service.NewLookupService(provider.NewSelector(appConfig.Providers(), appLogger), nil, appLogger)
	return runLookup(ctx, svc, *lookupIP, *lookupProvider, os.Stdout)
}

// runLookup validates input exactly like the HTTP API and prints the record
// Domain errors are printed as the same JSON envelope the API returns.
func runLookup(ctx context.Context, svc *service.LookupService, ip, providerName string, out io.Writer) error {
	req, err := service.ParseLookupRequest(ip, providerName)
	if err != nil {
		return err
	}

	record, err := svc.Lookup(ctx, req)
	if err != nil {
		if geoErr, ok := models.AsGeoError(err); ok {
			if writeErr := writeJSON(out, geoErr.Response()); writeErr != nil {
				return fmt.Errorf("%w (cannot print error response: %v)", err, writeErr)
			}
		}
		return err
	}

	return writeJSON(out, record)
}

// writeOpenAPI dumps the registered swagger document to path
func writeOpenAPI(path string) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return fmt.Errorf("cannot render OpenAPI document: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(doc), "", "  "); err != nil {
		return fmt.Errorf("OpenAPI document is not valid JSON: %w", err)
	}
	pretty.WriteByte('\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}

func providerList() string {
	names := make([]string, 0, len(models.SupportedProviders()))
	for _, name := range models.SupportedProviders() {
		names = append(names, name.String())
	}
	return strings.Join(names, ", ")
}
