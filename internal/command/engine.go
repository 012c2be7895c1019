// Package command implements the bot's slash commands on top of the shared,
// lock-guarded dependencies.
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/flor3z/hypixel-link-bot/internal/hypixel"
	"github.com/flor3z/hypixel-link-bot/internal/identity"
)

var (
	// ErrNotLinked means a Discord user has no linked account
	ErrNotLinked = errors.New("is not linked to a Hypixel account")
	// ErrNoProfile means no SkyBlock profile matched the request
	ErrNoProfile = errors.New("no SkyBlock profile found")
)

// Invoker is the Discord user who ran a command
type Invoker struct {
	ID  string
	Tag string // name#discriminator, or the bare name for migrated accounts
}

// Invocation is the context of one command
type Invocation struct {
	GuildID string
	User    Invoker
}

// Response is what the bot sends back for a command
type Response struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
}

func textResponse(format string, args ...any) *Response {
	return &Response{Content: fmt.Sprintf(format, args...)}
}

// Engine executes parsed commands
type Engine struct {
	guard *Guard
	now   func() time.Time
}

// NewEngine creates an Engine working through guard
func NewEngine(guard *Guard) *Engine {
	return &Engine{guard: guard, now: time.Now}
}

// Execute runs cmd. Failures the user should simply read about (bad input,
// unknown players, API errors) come back as a Response; anything else is
// returned as an error.
func (e *Engine) Execute(ctx context.Context, inv Invocation, cmd Command) (*Response, error) {
	var (
		resp *Response
		err  error
	)
	switch c := cmd.(type) {
	case Verify:
		resp, err = e.verify(ctx, inv, c)
	case Settings:
		resp, err = e.settings(ctx, inv, c.Action)
	case Lookup:
		resp, err = e.lookup(ctx, c)
	case Reqs:
		resp, err = e.reqs(ctx, c)
	case Help:
		resp = helpResponse()
	default:
		err = fmt.Errorf("unsupported command %T", cmd)
	}

	if err != nil {
		if isUserFacing(err) {
			return textResponse("%s", err.Error()), nil
		}
		return nil, err
	}
	return resp, nil
}

func isUserFacing(err error) bool {
	var (
		validation *ValidationError
		notLinked  *identity.NotLinkedError
		apiErr     *hypixel.APIError
	)
	switch {
	case errors.As(err, &validation),
		errors.As(err, &notLinked),
		errors.As(err, &apiErr),
		errors.Is(err, hypixel.ErrNotFound),
		errors.Is(err, ErrNotLinked),
		errors.Is(err, ErrNoProfile):
		return true
	}
	return false
}
