package mock

import (
	"fmt"

	"shuttle/internal/logging"
	"shuttle/internal/telemetry"
	"shuttle/transport"
)

// poller drains every configured topic into one ordered batch per cycle
// and pushes it onto the consumer stream.
type poller struct {
	driver transport.Driver
	topics transport.TopicMap
	serdes transport.SerdeMap
}

func (p *poller) poll(c *Consumer) {
	telemetry.PollCycles.Inc()
	batch := p.gather()
	if len(batch) == 0 {
		return
	}
	if err := flush(c, batch); err != nil {
		logging.L().Error("mock consumer: enqueue failed", "err", err)
		// Downgrade to a single error message; a poll cycle must not
		// take the loop down with it. The stop-guarded push waits for a
		// reader but never outlives shutdown.
		c.push(transport.Message{Err: err})
	}
}

// gather walks logical topics in sorted key order, draining each one
// until the driver reports no more output. Topics with nothing pending
// contribute nothing to the batch.
func (p *poller) gather() []transport.Message {
	var batch []transport.Message
	for _, key := range p.topics.Keys() {
		name := p.topics[key].Name
		for {
			rec := p.driver.ReadNext(name)
			if rec == nil {
				break
			}
			batch = append(batch, p.decode(rec))
		}
	}
	return batch
}

// decode lifts a driver record into a delivered message: logical topic
// via reverse lookup, then key/value through that topic's deserializers.
func (p *poller) decode(rec *transport.OutputRecord) transport.Message {
	m := transport.FromOutputRecord(rec)
	if logical, ok := p.topics.LogicalFor(rec.Topic); ok {
		m.Topic = logical
	}
	sp, ok := p.serdes[m.Topic]
	if ok && sp.Key != nil {
		if v, err := sp.Key.Deserialize(m.Topic, rec.Key); err != nil {
			m.Err = &transport.SerdeError{Op: "deserialize", Topic: m.Topic, Err: err}
		} else {
			m.Key = v
		}
	}
	if ok && m.Err == nil && sp.Value != nil {
		if v, err := sp.Value.Deserialize(m.Topic, rec.Value); err != nil {
			m.Err = &transport.SerdeError{Op: "deserialize", Topic: m.Topic, Err: err}
		} else {
			m.Value = v
		}
	}
	if m.Err != nil {
		logging.L().Warn("mock consumer: deserialize failed", "topic", m.Topic, "err", m.Err)
	}
	telemetry.RecordsPolled.Inc()
	return m
}

// flush pushes the batch as one unit, converting enqueue failures
// (shutdown race, closed stream) into an error instead of a panic.
func flush(c *Consumer, batch []transport.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mock consumer: push on closed stream: %v", r)
		}
	}()
	for _, m := range batch {
		if !c.push(m) {
			return fmt.Errorf("mock consumer: stream rejected batch during shutdown")
		}
	}
	return nil
}
