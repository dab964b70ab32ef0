package provider_test

import (
	"time"

	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/provider"
	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

const testUserAgent = "test-agent"

type MockedProviderTestSuite struct {
	suite.Suite

	http *resty.Client
}

func (suite *MockedProviderTestSuite) SetupTest() {
	suite.http = provider.NewHTTPClient(provider.Options{
		Timeout:   time.Second,
		UserAgent: testUserAgent,
	}, logger.Nop())

	httpmock.ActivateNonDefault(suite.http.GetClient())
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.DeactivateAndReset()
}

// statusCase is one row of an HTTP status mapping table
type statusCase struct {
	status int
	body   string
	target error
}

// payloadCase is one row of an error payload mapping table
type payloadCase struct {
	name   string
	body   string
	target error
}
