package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
)

type fakeLookup struct {
	profile    *hypixel.MojangProfile
	profileErr error
	playerDoc  string
	playerErr  error

	playerCalls int
}

func (f *fakeLookup) UsernameToUUID(ctx context.Context, username string) (*hypixel.MojangProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeLookup) GetPlayerByUUID(ctx context.Context, uuid string) (*hypixel.Player, error) {
	f.playerCalls++
	if f.playerErr != nil {
		return nil, f.playerErr
	}
	return hypixel.PlayerFromJSON([]byte(f.playerDoc))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	api := &fakeLookup{
		profile:   &hypixel.MojangProfile{UUID: "u1", Username: "Notch"},
		playerDoc: `{"uuid":"u1","socialMedia":{"links":{"DISCORD":"Foo#0001"}}}`,
	}
	got, err := NewResolver(api).Resolve(context.Background(), "notch")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := Identity{UUID: "u1", Username: "Notch", ClaimedTag: "Foo#0001"}
	if *got != want {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}
}

func TestResolveNotLinked(t *testing.T) {
	t.Parallel()

	api := &fakeLookup{
		profile:   &hypixel.MojangProfile{UUID: "u1", Username: "Notch"},
		playerDoc: `{"uuid":"u1","socialMedia":{"links":{"TWITTER":"notch"}}}`,
	}
	_, err := NewResolver(api).Resolve(context.Background(), "notch")

	var notLinked *NotLinkedError
	if !errors.As(err, &notLinked) {
		t.Fatalf("expected NotLinkedError, got %v", err)
	}
	if notLinked.Error() != "Notch is not linked on Hypixel" {
		t.Fatalf("message = %q", notLinked.Error())
	}
}

func TestResolvePassesUpstreamErrors(t *testing.T) {
	t.Parallel()

	upstream := &hypixel.APIError{StatusCode: 503, Cause: "maintenance"}

	api := &fakeLookup{profileErr: upstream}
	if _, err := NewResolver(api).Resolve(context.Background(), "notch"); err != upstream {
		t.Fatalf("expected upstream error unchanged, got %v", err)
	}
	if api.playerCalls != 0 {
		t.Fatal("player lookup must not run after a failed uuid lookup")
	}

	api = &fakeLookup{
		profile:   &hypixel.MojangProfile{UUID: "u1", Username: "Notch"},
		playerErr: hypixel.ErrNotFound,
	}
	if _, err := NewResolver(api).Resolve(context.Background(), "notch"); !errors.Is(err, hypixel.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
