// Package discord wires the chat command surface to the player manager.
// Every domain error a command raises is rendered as a chat reply; nothing
// from this layer crashes the process.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"github.com/XuaTheGrate/adventure-api/internal/entities"
	"github.com/XuaTheGrate/adventure-api/internal/errors"
	"github.com/XuaTheGrate/adventure-api/internal/mapgraph"
	"github.com/XuaTheGrate/adventure-api/internal/orchestrators/player"
	"github.com/XuaTheGrate/adventure-api/internal/pkg/clock"
	"github.com/XuaTheGrate/adventure-api/internal/repositories/item"
)

const (
	// DefaultPrefix starts every command message
	DefaultPrefix = "$"

	sourceURL = "https://github.com/XuaTheGrate/adventure-api"

	genericFailure = "Something went wrong, please try again later."
)

// Config holds the dependencies for the command handler
type Config struct {
	Manager *player.Manager
	Graph   *mapgraph.Graph
	Items   item.Repository

	// Prefix overrides DefaultPrefix when set
	Prefix string

	// Clock for rendering arrival times; real clock when nil
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()

	if c.Manager == nil {
		vb.RequiredField("Manager")
	}
	if c.Graph == nil {
		vb.RequiredField("Graph")
	}
	if c.Items == nil {
		vb.RequiredField("Items")
	}

	return vb.Build()
}

// Handler dispatches prefixed chat commands to the player manager.
type Handler struct {
	manager *player.Manager
	graph   *mapgraph.Graph
	items   item.Repository
	prefix  string
	clock   clock.Clock
}

// NewHandler creates a new command handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Handler{
		manager: cfg.Manager,
		graph:   cfg.Graph,
		items:   cfg.Items,
		prefix:  prefix,
		clock:   c,
	}, nil
}

// Register attaches the handler to a discord session.
func (h *Handler) Register(s *discordgo.Session) {
	s.AddHandler(h.onMessageCreate)
}

func (h *Handler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, h.prefix) {
		return
	}

	line := strings.TrimPrefix(m.Content, h.prefix)

	// Avatar needs the discord user object, so it stays in the glue layer.
	if strings.EqualFold(strings.TrimSpace(line), "avatar") {
		h.reply(s, m.ChannelID, m.Author.AvatarURL("256"))
		return
	}

	reply := h.Dispatch(context.Background(), m.Author.ID, m.Author.Username, line)
	if reply != "" {
		h.reply(s, m.ChannelID, reply)
	}
}

func (h *Handler) reply(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		slog.Warn("failed to send reply", "channel_id", channelID, "error", err)
	}
}

// Dispatch parses a prefix-stripped command line and returns the reply text.
// It is the whole command surface minus the discord session plumbing, so
// tests can drive it directly.
func (h *Handler) Dispatch(ctx context.Context, ownerID, username, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "ping":
		return "pong!"
	case "source":
		return sourceURL
	case "help":
		return h.helpText()
	case "create", "register":
		return h.create(ctx, ownerID, username, args)
	case "status":
		return h.status(ctx, ownerID, username)
	case "travel":
		return h.travel(ctx, ownerID, username, args)
	case "explore":
		return h.explore(ctx, ownerID, username)
	case "nearby":
		return h.nearby(ctx, ownerID, username)
	case "map":
		return h.currentMap(ctx, ownerID, username)
	case "shop":
		return h.shop(ctx)
	case "delete":
		return h.delete(ctx, ownerID)
	default:
		return fmt.Sprintf("Unknown command %q, try %shelp.", command, h.prefix)
	}
}

func (h *Handler) helpText() string {
	return strings.Join([]string{
		"Commands:",
		h.prefix + "create [name] - register a new adventurer",
		h.prefix + "status - what you are up to right now",
		h.prefix + "travel <map> - set off toward a nearby map",
		h.prefix + "explore - explore your current map",
		h.prefix + "nearby - list reachable maps",
		h.prefix + "map - describe your current map",
		h.prefix + "shop - list purchasable items",
		h.prefix + "delete - delete your adventurer",
	}, "\n")
}

func (h *Handler) player(ctx context.Context, ownerID, username string) (*player.Player, error) {
	out, err := h.manager.GetOrCreate(ctx, player.GetOrCreateInput{
		OwnerID: ownerID,
		Name:    username,
	})
	if err != nil {
		return nil, err
	}
	return out.Player, nil
}

func (h *Handler) create(ctx context.Context, ownerID, username string, args []string) string {
	name := username
	if len(args) > 0 {
		name = strings.Join(args, " ")
	}

	out, err := h.manager.GetOrCreate(ctx, player.GetOrCreateInput{
		OwnerID: ownerID,
		Name:    name,
	})
	if err != nil {
		return h.renderError(err)
	}
	if !out.Created {
		return fmt.Sprintf("You already have an adventurer named %s.", out.Player.Name())
	}
	return fmt.Sprintf("Welcome, %s! Your adventure begins in %s.",
		out.Player.Name(), out.Player.Map().Name)
}

func (h *Handler) status(ctx context.Context, ownerID, username string) string {
	p, err := h.player(ctx, ownerID, username)
	if err != nil {
		return h.renderError(err)
	}

	// Lazy resolution path: a lapsed activity completes here even if the
	// poll loop has not reached this player yet.
	if _, err := p.Resolve(ctx); err != nil {
		return h.renderError(err)
	}

	switch p.Status() {
	case entities.StatusTravelling:
		remaining, err := p.TravelRemaining(ctx)
		if err != nil {
			return h.renderError(err)
		}
		return fmt.Sprintf("%s is travelling, arriving %s.",
			p.Name(), humanize.Time(h.clock.Now().Add(remaining)))
	case entities.StatusExploring:
		remaining, err := p.ExploreRemaining(ctx)
		if err != nil {
			return h.renderError(err)
		}
		return fmt.Sprintf("%s is exploring %s, finishing %s.",
			p.Name(), p.Map().Name, humanize.Time(h.clock.Now().Add(remaining)))
	default:
		return fmt.Sprintf("%s is idling in %s. Explored maps: %d.",
			p.Name(), p.Map().Name, len(p.ExploredMaps()))
	}
}

func (h *Handler) travel(ctx context.Context, ownerID, username string, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("Where to? Try %snearby to see your options.", h.prefix)
	}

	p, err := h.player(ctx, ownerID, username)
	if err != nil {
		return h.renderError(err)
	}

	dest, err := h.graph.FindByName(strings.Join(args, " "))
	if err != nil {
		return h.renderError(err)
	}
	if !p.Map().IsNearby(dest) {
		return fmt.Sprintf("%s is not reachable from %s.", dest.Name, p.Map().Name)
	}

	ttl, err := p.TravelTo(ctx, dest)
	if err != nil {
		return h.renderError(err)
	}
	return fmt.Sprintf("%s sets off toward %s, arriving %s.",
		p.Name(), dest.Name, humanize.Time(h.clock.Now().Add(ttl)))
}

func (h *Handler) explore(ctx context.Context, ownerID, username string) string {
	p, err := h.player(ctx, ownerID, username)
	if err != nil {
		return h.renderError(err)
	}

	ttl, err := p.Explore(ctx)
	if err != nil {
		return h.renderError(err)
	}
	return fmt.Sprintf("%s starts exploring %s, finishing %s.",
		p.Name(), p.Map().Name, humanize.Time(h.clock.Now().Add(ttl)))
}

func (h *Handler) nearby(ctx context.Context, ownerID, username string) string {
	p, err := h.player(ctx, ownerID, username)
	if err != nil {
		return h.renderError(err)
	}

	current := p.Map()
	if len(current.Nearby) == 0 {
		return fmt.Sprintf("Nothing is reachable from %s.", current.Name)
	}
	names := make([]string, len(current.Nearby))
	for i, m := range current.Nearby {
		names[i] = m.Name
	}
	return fmt.Sprintf("From %s you can reach: %s.", current.Name, strings.Join(names, ", "))
}

func (h *Handler) currentMap(ctx context.Context, ownerID, username string) string {
	p, err := h.player(ctx, ownerID, username)
	if err != nil {
		return h.renderError(err)
	}

	current := p.Map()
	explored := ""
	for _, m := range p.ExploredMaps() {
		if m.ID == current.ID {
			explored = " You have explored this place."
			break
		}
	}
	return fmt.Sprintf("%s - %s%s", current.Name, current.Description, explored)
}

func (h *Handler) shop(ctx context.Context) string {
	out, err := h.items.List(ctx)
	if err != nil {
		return h.renderError(err)
	}
	if len(out.Items) == 0 {
		return "The shop is empty today."
	}

	lines := make([]string, 0, len(out.Items)+1)
	lines = append(lines, "For sale:")
	for _, it := range out.Items {
		lines = append(lines, fmt.Sprintf("  %d. %s - %.2f gold", it.ID, it.Name, it.Cost))
	}
	return strings.Join(lines, "\n")
}

func (h *Handler) delete(ctx context.Context, ownerID string) string {
	if _, err := h.manager.Delete(ctx, player.DeleteInput{OwnerID: ownerID}); err != nil {
		if errors.IsNotFound(err) {
			return "You have no adventurer to delete."
		}
		return h.renderError(err)
	}
	return "Your adventurer has been deleted. Farewell."
}

// renderError turns domain errors into user-facing text and hides
// infrastructure failures behind a generic message.
func (h *Handler) renderError(err error) string {
	switch errors.GetCode(err) {
	case errors.CodeNotFound,
		errors.CodeInvalidArgument,
		errors.CodeAlreadyExists,
		errors.CodeFailedPrecondition:
		return errors.GetMessage(err)
	default:
		slog.Error("command failed", "error", err)
		return genericFailure
	}
}
