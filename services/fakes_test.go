package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"food-ordering-api/events"
	"food-ordering-api/imagestore"
	"food-ordering-api/payment"
	"food-ordering-api/store/gormstore"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	session  *payment.Session
	err      error
	event    *payment.Event
	parseErr error
	requests []payment.SessionRequest
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

func (g *fakeGateway) ParseWebhook(_ []byte, signature string) (*payment.Event, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	if signature == "" {
		return nil, errors.New("no signature")
	}
	return g.event, nil
}

type fakeUploader struct {
	url     string
	err     error
	uploads int
}

func (u *fakeUploader) Upload(context.Context, *imagestore.Image) (string, error) {
	u.uploads++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, ev events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func newTestStore(t *testing.T) *gormstore.Store {
	t.Helper()
	s, err := gormstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestLogger() (*logrus.Logger, *logrustest.Hook) {
	return logrustest.NewNullLogger()
}

func testImage() *imagestore.Image {
	return &imagestore.Image{Filename: "a.png", ContentType: "image/png", Data: []byte{1, 2, 3}}
}
