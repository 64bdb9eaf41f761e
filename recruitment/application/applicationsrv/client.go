package applicationsrv

import (
	"github.com/Abraxas-365/hireflow/internal/config"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationhttp"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationmock"
)

// New picks the mock or HTTP adapter once, from configuration
func New(cfg config.Client) (application.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UseMockData {
		logx.Info("Using mock application data")
		return WithLogging(applicationmock.NewService(applicationmock.WithDelay(cfg.MockDelay)), "mock"), nil
	}

	logx.Infof("Using application backend at %s", cfg.APIBaseURL)
	client := applicationhttp.NewClient(applicationhttp.Config{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		RateLimit: cfg.RateLimit,
	})
	return WithLogging(client, "http"), nil
}
