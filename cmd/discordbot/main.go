/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/croquet-swiss/config"
	"github.com/mikeb26/croquet-swiss/store"
)

type TopLevelCommand string

const SwissCmd TopLevelCommand = "swiss"

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

// bot serves discord interactions backed by a tournament store.
type bot struct {
	cfg    *config.Config
	store  *store.Store
	pubKey ed25519.PublicKey
	client *discordgo.Session

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
	subCmdHdlrs      map[SwissSubCommand]CmdHandler
}

func newBot(cfg *config.Config, st *store.Store) (*bot, error) {
	pubKeyBytes, err := hex.DecodeString(cfg.Discord.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d",
			ed25519.PublicKeySize, len(pubKeyBytes))
	}

	b := &bot{
		cfg:    cfg,
		store:  st,
		pubKey: ed25519.PublicKey(pubKeyBytes),
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		SwissCmd: b.swissCmdHandler,
	}
	b.subCmdHdlrs = map[SwissSubCommand]CmdHandler{
		SwissHelpCmd:      b.swissHelpCmdHandler,
		SwissListCmd:      b.swissListCmdHandler,
		SwissPairingsCmd:  b.swissPairingsCmdHandler,
		SwissStandingsCmd: b.swissStandingsCmdHandler,
	}

	return b, nil
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			b.topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func tournamentOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tournament",
		Description: "Tournament name (as returned by list)",
		Required:    required,
	}
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func swissCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(SwissCmd),
		Description: "Swiss tournament commands; try /swiss help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissHelpCmd),
				Description: "Show usage for swiss",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissListCmd),
				Description: "List tournaments",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissPairingsCmd),
				Description: "Get pairings for a round",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(true),
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "round",
						Description: "Round number (default is the latest)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissStandingsCmd),
				Description: "Get current standings",
				Options: []*discordgo.ApplicationCommandOption{
					tournamentOption(true),
					broadcastOption(),
				},
			},
		},
	}
}

func (b *bot) registerSlashCommands() {
	cmd := swissCommand()
	appID := b.cfg.Discord.AppID

	if b.cfg.Discord.CommandID == "" {
		created, err := b.client.ApplicationCommandCreate(appID, "", cmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set discord.command_id to skip re-registration",
			created.Name, created.ID)
		return
	}

	updated, err := b.client.ApplicationCommandEdit(appID, "",
		b.cfg.Discord.CommandID, cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v)", updated.Name, updated.ID)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	cfgPath := os.Getenv("SWISS_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultFile
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("discordbot.main: failed to load config: %v", err)
	}

	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		log.Fatalf("discordbot.main: failed to open store: %v", err)
	}
	defer st.Close()

	b, err := newBot(cfg, st)
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	b.client, err = discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("discordbot.main: failed to initialize discord client: %v",
			err)
	}
	go b.registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:%v", hostname,
		cfg.Discord.Port)

	http.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Discord.Port),
		nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
