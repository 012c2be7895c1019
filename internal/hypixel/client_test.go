package hypixel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 1)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.baseURL = srv.URL
	c.mojangURL = srv.URL
	return c
}

func TestUsernameToUUID(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/profiles/minecraft/notch" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("API-Key") != "" {
			t.Error("API key must not be sent to Mojang")
		}
		w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`))
	})

	got, err := c.UsernameToUUID(context.Background(), "notch")
	if err != nil {
		t.Fatalf("username to uuid: %v", err)
	}
	if got.UUID != "069a79f444e94726a5befca90e38aaf5" {
		t.Fatalf("uuid = %q", got.UUID)
	}
	if got.Username != "Notch" {
		t.Fatalf("username = %q, want %q", got.Username, "Notch")
	}
}

func TestUsernameToUUIDNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessage":"Couldn't find any profile with name nobody"}`))
	})

	_, err := c.UsernameToUUID(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPlayerByUUID(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("API-Key") != "test-key" {
			t.Errorf("API-Key = %q", r.Header.Get("API-Key"))
		}
		if r.URL.Query().Get("uuid") != "u1" {
			t.Errorf("uuid query = %q", r.URL.Query().Get("uuid"))
		}
		w.Write([]byte(`{"success":true,"player":{"uuid":"u1","displayname":"Notch","socialMedia":{"links":{"DISCORD":"Foo#0001"}}}}`))
	})

	p, err := c.GetPlayerByUUID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.DisplayName != "Notch" {
		t.Fatalf("displayname = %q", p.DisplayName)
	}
	tag, ok := p.StringProperty("socialMedia.links.DISCORD")
	if !ok || tag != "Foo#0001" {
		t.Fatalf("discord = %q, %v", tag, ok)
	}
	if _, ok := p.StringProperty("socialMedia.links.TWITTER"); ok {
		t.Fatal("expected missing property")
	}
}

func TestGetPlayerNeverJoined(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"player":null}`))
	})

	_, err := c.GetPlayerByUUID(context.Background(), "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAPIErrorCause(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"cause":"Invalid API key"}`))
	})

	_, err := c.GetGuildByName(context.Background(), "Rebel")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Cause != "Invalid API key" {
		t.Fatalf("api error = %+v", apiErr)
	}
}

func TestGetGuild(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Get("name") == "Rebel":
			w.Write([]byte(`{"success":true,"guild":{"_id":"g1","name":"Rebel","tag":"RBL"}}`))
		default:
			w.Write([]byte(`{"success":true,"guild":null}`))
		}
	})

	g, err := c.GetGuildByName(context.Background(), "Rebel")
	if err != nil {
		t.Fatalf("get guild: %v", err)
	}
	if g.ID != "g1" || g.Name != "Rebel" {
		t.Fatalf("guild = %+v", g)
	}

	if _, err := c.GetGuildByPlayer(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for guildless player, got %v", err)
	}
}

func TestGetSkyblockProfiles(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"profiles":[
			{"profile_id":"p1","cute_name":"Apple","selected":false,"members":{"u1":{"last_save":100}}},
			{"profile_id":"p2","cute_name":"Banana","selected":true,"members":{"u1":{"profile":{"last_save":200}}}}
		]}`))
	})

	profiles, err := c.GetSkyblockProfiles(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(profiles))
	}
	if profiles[0].CuteName != "Apple" || profiles[0].LastSave != 100 {
		t.Fatalf("first profile = %+v", profiles[0])
	}
	if !profiles[1].Selected || profiles[1].LastSave != 200 {
		t.Fatalf("second profile = %+v", profiles[1])
	}
}

func TestGetSkyblockProfilesNone(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"profiles":null}`))
	})

	profiles, err := c.GetSkyblockProfiles(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get profiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("profiles = %d, want 0", len(profiles))
	}
}
