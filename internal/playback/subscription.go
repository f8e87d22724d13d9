package playback

const eventBufferSize = 16

// Subscription provides event channels for one observer. Sends are
// non-blocking; a slow observer loses events rather than stalling the
// controller.
type Subscription struct {
	StatusChanged   <-chan StatusChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	VolumeChanged   <-chan VolumeChange
	Notices         <-chan Notice
	Done            <-chan struct{}

	// Internal write channels
	statusCh   chan StatusChange
	trackCh    chan TrackChange
	positionCh chan PositionChange
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	volumeCh   chan VolumeChange
	noticeCh   chan Notice
	doneCh     chan struct{}
}

// newSubscription creates a subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		statusCh:   make(chan StatusChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		volumeCh:   make(chan VolumeChange, eventBufferSize),
		noticeCh:   make(chan Notice, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StatusChanged = s.statusCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.VolumeChanged = s.volumeCh
	s.Notices = s.noticeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop.
func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendStatus(e StatusChange) {
	select {
	case s.statusCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendQueue(e QueueChange) {
	select {
	case s.queueCh <- e:
	default:
	}
}

func (s *Subscription) sendMode(e ModeChange) {
	select {
	case s.modeCh <- e:
	default:
	}
}

func (s *Subscription) sendVolume(e VolumeChange) {
	select {
	case s.volumeCh <- e:
	default:
	}
}

func (s *Subscription) sendNotice(e Notice) {
	select {
	case s.noticeCh <- e:
	default:
	}
}
