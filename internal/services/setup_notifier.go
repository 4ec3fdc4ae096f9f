package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-saver/internal/events"
	"github.com/maxaizer/job-saver/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"time"
)

// SetupNotifier publishes SetupRequired, at most once per reason within the quiet period.
type SetupNotifier struct {
	bus    EventBus.Bus
	recent *gocache.Cache
}

func NewSetupNotifier(bus EventBus.Bus, quietPeriod time.Duration) *SetupNotifier {
	return &SetupNotifier{bus: bus, recent: gocache.New(quietPeriod, 2*quietPeriod)}
}

func (n *SetupNotifier) Notify(reason string) bool {
	if err := n.recent.Add(reason, struct{}{}, gocache.DefaultExpiration); err != nil {
		log.Debugf("setup prompt suppressed, already sent recently: %s", reason)
		return false
	}

	metrics.SetupPromptsCounter.Inc()
	log.Infof("credential setup required: %s", reason)
	n.bus.Publish(events.SetupRequiredTopic, events.SetupRequired{Reason: reason})
	return true
}
