package bus

import "github.com/zeusync/sceneedit/internal/core/observability/log"

var _ Observer = (*LogObserver)(nil)

// LogObserver reports every delivery to a logger. Failed deliveries are
// logged at Warn level, the rest at Debug.
type LogObserver struct {
	logger log.Log
}

func NewLogObserver(logger log.Log) *LogObserver {
	return &LogObserver{logger: logger.Named("bus")}
}

func (o *LogObserver) OnPublish(string) {}

func (o *LogObserver) OnDelivered(topic string, handlers int, err error) {
	if err != nil {
		o.logger.Warn("signal delivery failed",
			log.String("topic", topic),
			log.Int("handlers", handlers),
			log.Error(err),
		)
		return
	}
	o.logger.Debug("signal delivered", log.String("topic", topic), log.Int("handlers", handlers))
}
