package emitter

import "github.com/fjglira/tcbridge/internal/domain"

// Recorder is an in-memory Sink. Err, when set, is returned from every Emit
// after the message has been recorded.
type Recorder struct {
	Messages []domain.ServiceMessage
	Err      error
}

// Emit records msg.
func (r *Recorder) Emit(msg domain.ServiceMessage) error {
	r.Messages = append(r.Messages, msg)
	return r.Err
}

// Names returns the names of the recorded messages in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		names[i] = m.Name
	}
	return names
}
