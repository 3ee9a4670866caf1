package broadcast

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	emitter := New()
	first, cancelFirst := emitter.Subscribe()
	defer cancelFirst()
	second, cancelSecond := emitter.Subscribe()
	defer cancelSecond()

	emitter.Publish()

	select {
	case <-first:
	default:
		t.Fatal("first subscriber missed the pulse")
	}
	select {
	case <-second:
	default:
		t.Fatal("second subscriber missed the pulse")
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	t.Parallel()

	emitter := New()
	ch, cancel := emitter.Subscribe()
	defer cancel()

	// Nobody drains; repeated publishes must still return.
	emitter.Publish()
	emitter.Publish()
	emitter.Publish()

	// Exactly one pulse is buffered; intermediate ones collapse.
	<-ch
	select {
	case <-ch:
		t.Fatal("expected at most one buffered pulse")
	default:
	}
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	t.Parallel()

	emitter := New()
	ch, cancel := emitter.Subscribe()
	cancel()

	emitter.Publish()
	select {
	case <-ch:
		t.Fatal("cancelled subscriber must not receive pulses")
	default:
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	t.Parallel()

	emitter := New()
	emitter.Publish()
}
