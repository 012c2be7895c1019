package roles

import (
	"errors"
	"testing"

	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/storage"
)

func TestVerified(t *testing.T) {
	t.Parallel()

	got, err := Verified(&storage.Settings{VerifiedRole: "10"})
	if err != nil {
		t.Fatalf("Verified: %v", err)
	}
	if want := (Grant{RoleID: "10", Kind: GrantVerified}); got != want {
		t.Fatalf("Verified = %+v, want %+v", got, want)
	}

	if _, err := Verified(&storage.Settings{}); !errors.Is(err, ErrNoVerifiedRole) {
		t.Fatalf("expected ErrNoVerifiedRole, got %v", err)
	}
}

func TestGuild(t *testing.T) {
	t.Parallel()

	settings := &storage.Settings{
		VerifiedRole: "10",
		GuildRoles:   map[string]string{"g1": "20", "g3": ""},
	}

	tests := []struct {
		name   string
		guild  *hypixel.Guild
		want   Grant
		wantOK bool
	}{
		{name: "no guild"},
		{name: "unmapped guild", guild: &hypixel.Guild{ID: "g2"}},
		{name: "empty mapping", guild: &hypixel.Guild{ID: "g3"}},
		{name: "mapped guild", guild: &hypixel.Guild{ID: "g1"}, want: Grant{RoleID: "20", Kind: GrantGuild}, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Guild(settings, tt.guild)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Guild = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseMention(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "<@&123>", want: "123"},
		{in: "<@123>", want: "123"},
		{in: "123", want: "123"},
		{in: " <@&456> ", want: "456"},
		{in: "<@&abc>", wantErr: true},
		{in: "<@&0>", wantErr: true},
		{in: "@everyone", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMention(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseMention(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMention(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMention(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
