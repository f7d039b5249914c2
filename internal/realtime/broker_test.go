package realtime

import "testing"

func TestSubscribeReceivesLatest(t *testing.T) {
	b := NewBroker[int]()
	b.Publish(1)

	ch, cancel := b.Subscribe()
	defer cancel()
	if got := <-ch; got != 1 {
		t.Errorf("initial snapshot = %d, want 1", got)
	}
}

func TestPublishReplacesUnread(t *testing.T) {
	b := NewBroker[int]()
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	if got := <-ch; got != 3 {
		t.Errorf("got %d, want newest snapshot 3", got)
	}
	select {
	case v := <-ch:
		t.Errorf("unexpected extra snapshot %d", v)
	default:
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBroker[string]()
	ch, cancel := b.Subscribe()
	if b.Subscribers() != 1 {
		t.Fatalf("Subscribers = %d", b.Subscribers())
	}
	cancel()
	cancel()
	if b.Subscribers() != 0 {
		t.Errorf("Subscribers after cancel = %d", b.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}
	b.Publish("ignored")
}

func TestClose(t *testing.T) {
	b := NewBroker[int]()
	ch, cancel := b.Subscribe()
	b.Close()
	if _, ok := <-ch; ok {
		t.Error("channel open after Close")
	}
	cancel()
	b.Publish(1)

	late, _ := b.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscribe after Close returned open channel")
	}
}

func TestHasSnapshot(t *testing.T) {
	b := NewBroker[int]()
	if b.HasSnapshot() {
		t.Error("fresh broker has snapshot")
	}
	b.Publish(0)
	if !b.HasSnapshot() {
		t.Error("HasSnapshot false after publish")
	}
}
