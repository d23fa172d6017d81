package adventure

import (
	"context"
	"strings"
	"testing"

	"github.com/louisbranch/questline/internal/rpg"
)

type fakeSender struct {
	texts  []string
	medias []string
}

func (f *fakeSender) SendText(ctx context.Context, to, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSender) SendMedia(ctx context.Context, to, url, caption string) error {
	f.medias = append(f.medias, caption)
	return nil
}

func (f *fakeSender) SendImage(ctx context.Context, to, path string) error   { return nil }
func (f *fakeSender) SendVideo(ctx context.Context, to, path string) error   { return nil }
func (f *fakeSender) SendAudio(ctx context.Context, to, path string) error   { return nil }
func (f *fakeSender) SendFile(ctx context.Context, to, path string) error    { return nil }
func (f *fakeSender) SendSticker(ctx context.Context, to, path string) error { return nil }

func newTestHandler(t *testing.T, store *fakeUserStore, rolls []float64, ints []int) (*Handler, *fakeSender, *PendingChoices) {
	t.Helper()
	engine := newTestEngine(t, store, rolls, ints)
	pending := NewPendingChoices()
	sender := &fakeSender{}
	return NewHandler(engine, store, pending, sender), sender, pending
}

func TestHandleCommandListsUnlockedLocations(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	if err := handler.HandleCommand(context.Background(), "user-1", nil); err != nil {
		t.Fatal(err)
	}

	if len(sender.texts) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.texts))
	}
	if !strings.Contains(sender.texts[0], "cavern") {
		t.Errorf("expected the first location listed, got %q", sender.texts[0])
	}
	if strings.Contains(sender.texts[0], "peak") {
		t.Errorf("locked locations must not be listed, got %q", sender.texts[0])
	}
}

func TestHandleCommandRequiresHealth(t *testing.T) {
	store := newFakeUserStore()
	rec := rpg.NewRecord()
	rec.Health = 30
	store.records["user-1"] = rec
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	if err := handler.HandleCommand(context.Background(), "user-1", nil); err != nil {
		t.Fatal(err)
	}

	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "at least 50 health") {
		t.Errorf("expected a health warning, got %v", sender.texts)
	}
}

func TestHandleCommandPresentsCurrentEvent(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, pending := newTestHandler(t, store, nil, nil)

	err := handler.HandleCommand(context.Background(), "user-1", []string{"cavern", "echo"})
	if err != nil {
		t.Fatal(err)
	}

	if len(sender.medias) != 1 {
		t.Fatalf("expected an event caption, got %v", sender.medias)
	}
	if !strings.Contains(sender.medias[0], "Echoing Hall") {
		t.Errorf("expected event title in caption, got %q", sender.medias[0])
	}
	if !pending.Has("user-1") {
		t.Error("expected a pending choice after presentation")
	}
}

func TestHandleCommandRejectsOutOfOrderEvent(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, pending := newTestHandler(t, store, nil, nil)

	err := handler.HandleCommand(context.Background(), "user-1", []string{"cavern", "chasm"})
	if err != nil {
		t.Fatal(err)
	}

	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "complete events in order") {
		t.Errorf("expected an ordering rejection, got %v", sender.texts)
	}
	if !strings.Contains(sender.texts[0], "adventure cavern echo") {
		t.Errorf("expected the correct next event named, got %q", sender.texts[0])
	}
	if pending.Has("user-1") {
		t.Error("a rejected presentation must not leave a pending choice")
	}
}

func TestHandleCommandRejectsLockedLocation(t *testing.T) {
	store := newFakeUserStore()
	rec := rpg.NewRecord()
	rec.Level = 10
	store.records["user-1"] = rec
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	err := handler.HandleCommand(context.Background(), "user-1", []string{"peak", "summit"})
	if err != nil {
		t.Fatal(err)
	}

	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "must complete all events in Cavern") {
		t.Errorf("expected a gating rejection, got %v", sender.texts)
	}
}

func TestPresentingReplacesPendingChoiceWithNotice(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	ctx := context.Background()
	if err := handler.HandleCommand(ctx, "user-1", []string{"cavern", "echo"}); err != nil {
		t.Fatal(err)
	}
	if err := handler.HandleCommand(ctx, "user-1", []string{"cavern", "echo"}); err != nil {
		t.Fatal(err)
	}

	if len(sender.medias) != 2 {
		t.Fatalf("expected two captions, got %d", len(sender.medias))
	}
	if strings.Contains(sender.medias[0], "discarded") {
		t.Error("first presentation must not mention a discard")
	}
	if !strings.Contains(sender.medias[1], "discarded") {
		t.Error("second presentation must note the discarded choice")
	}
}

func TestHandleTextChoiceResolvesPending(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, _ := newTestHandler(t, store, []float64{0.5, 0.9}, []int{10, 7, 3})

	ctx := context.Background()
	if err := handler.HandleCommand(ctx, "user-1", []string{"cavern", "echo"}); err != nil {
		t.Fatal(err)
	}

	handled, err := handler.HandleTextChoice(ctx, "user-1", " a ")
	if err != nil {
		t.Fatal(err)
	}
	if !handled {
		t.Fatal("expected the letter to resolve the pending choice")
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "Perfect Pass") {
		t.Errorf("expected a pass result, got %v", sender.texts)
	}
	if store.records["user-1"].TotalAdventures != 1 {
		t.Error("expected the resolution persisted")
	}
}

func TestHandleTextChoiceIgnoresLettersWithoutPending(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	handled, err := handler.HandleTextChoice(context.Background(), "user-1", "A")
	if err != nil {
		t.Fatal(err)
	}
	if handled {
		t.Error("a letter with no pending choice must fall through")
	}
	if len(sender.texts) != 0 {
		t.Errorf("expected no reply, got %v", sender.texts)
	}
}

func TestHandleButtonReplyWithoutPendingFallsThrough(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	handled, err := handler.HandleButtonReply(context.Background(), "user-1", "cavern_echo_A")
	if err != nil {
		t.Fatal(err)
	}
	if handled {
		t.Error("a button press with no pending choice must fall through")
	}
	if len(sender.texts) != 0 {
		t.Errorf("expected no reply, got %v", sender.texts)
	}
	if store.records["user-1"].TotalAdventures != 0 {
		t.Error("expected no state mutation")
	}
}

func TestHandleButtonReplyResolvesPending(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, pending := newTestHandler(t, store, []float64{0.95}, []int{10, 7, 3})

	ctx := context.Background()
	if err := handler.HandleCommand(ctx, "user-1", []string{"cavern", "echo"}); err != nil {
		t.Fatal(err)
	}

	handled, err := handler.HandleButtonReply(ctx, "user-1", "cavern_echo_A")
	if err != nil {
		t.Fatal(err)
	}
	if !handled {
		t.Fatal("expected the button to resolve the pending choice")
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "Failed!") {
		t.Errorf("expected a failure result, got %v", sender.texts)
	}
	if pending.Has("user-1") {
		t.Error("expected the pending choice consumed")
	}
}

func TestHandleButtonReplyInvalidKeepsOffer(t *testing.T) {
	store := newFakeUserStore()
	handler, sender, pending := newTestHandler(t, store, []float64{0.5, 0.9}, []int{10, 7, 3})

	ctx := context.Background()
	if err := handler.HandleCommand(ctx, "user-1", []string{"cavern", "echo"}); err != nil {
		t.Fatal(err)
	}

	handled, err := handler.HandleButtonReply(ctx, "user-1", "cavern_echo_Z")
	if err != nil {
		t.Fatal(err)
	}
	if !handled {
		t.Fatal("a mismatched button with a pending choice is still handled")
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "Invalid choice") {
		t.Errorf("expected an invalid-selection reply, got %v", sender.texts)
	}
	if !pending.Has("user-1") {
		t.Fatal("an invalid press must leave the offer standing")
	}
	if store.records["user-1"].TotalAdventures != 0 {
		t.Error("expected no state mutation on an invalid press")
	}

	handled, err = handler.HandleButtonReply(ctx, "user-1", "cavern_echo_A")
	if err != nil {
		t.Fatal(err)
	}
	if !handled {
		t.Fatal("expected the valid button to resolve the surviving offer")
	}
	if pending.Has("user-1") {
		t.Error("expected the pending choice consumed on the valid press")
	}
	if store.records["user-1"].TotalAdventures != 1 {
		t.Error("expected the resolution persisted")
	}
}

func TestResolveShortfallReplyListsAllMisses(t *testing.T) {
	store := newFakeUserStore()
	rec := rpg.NewRecord()
	rec.Energy = 2
	store.records["user-1"] = rec
	handler, sender, _ := newTestHandler(t, store, nil, nil)

	ctx := context.Background()
	if err := handler.HandleCommand(ctx, "user-1", []string{"cavern", "echo"}); err != nil {
		t.Fatal(err)
	}
	if _, err := handler.HandleTextChoice(ctx, "user-1", "A"); err != nil {
		t.Fatal(err)
	}

	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "Insufficient Resources") {
		t.Errorf("expected a shortfall reply, got %v", sender.texts)
	}
	if !strings.Contains(sender.texts[0], "energy: need 5, have 2") {
		t.Errorf("expected the energy shortfall detailed, got %q", sender.texts[0])
	}
}
