package sdk

import (
	"net/http"

	"github.com/asaskevich/EventBus"
	"github.com/coschain/cos-sdk-go/common/crypto"
	"github.com/sirupsen/logrus"
)

type Option func(*SDK)

// WithLogger replaces the logger built from the config.
func WithLogger(log *logrus.Logger) Option {
	return func(s *SDK) { s.log = log }
}

// WithModule installs m instead of loading Config.ModulePath.
func WithModule(m crypto.Module) Option {
	return func(s *SDK) { s.module = m }
}

// WithHTTPClient replaces the http.Client built from Config.HTTPTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *SDK) { s.httpClient = c }
}

// WithEventBus shares an existing bus, e.g. the embedding application's.
func WithEventBus(bus EventBus.Bus) Option {
	return func(s *SDK) { s.noticer = bus }
}
