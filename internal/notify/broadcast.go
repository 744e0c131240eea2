package notify

import (
	"github.com/pusher/pusher-http-go/v5"

	"github.com/cabwise/dispatch-go/internal/config"
)

// Channel and event names published for job lifecycle changes.
const (
	JobChannel      = "job-channel"
	EventJobCreated = "new-job"
	EventJobUpdated = "updated-job"
	EventJobDeleted = "deleted-job"
)

// Broadcaster publishes job lifecycle events to the shared real-time
// channel. Delivery is fire-and-forget: no acknowledgement, no retry.
type Broadcaster interface {
	Publish(event string, payload any) error
}

// PusherBroadcaster publishes events through Pusher Channels.
type PusherBroadcaster struct {
	client pusher.Client
}

// NewPusherBroadcaster builds a broadcaster from the pusher settings in cfg.
func NewPusherBroadcaster(cfg config.Config) *PusherBroadcaster {
	return &PusherBroadcaster{
		client: pusher.Client{
			AppID:   cfg.PusherAppID,
			Key:     cfg.PusherKey,
			Secret:  cfg.PusherSecret,
			Cluster: cfg.PusherCluster,
			Secure:  true,
		},
	}
}

// Publish triggers the event on the job channel.
func (b *PusherBroadcaster) Publish(event string, payload any) error {
	return b.client.Trigger(JobChannel, event, payload)
}
