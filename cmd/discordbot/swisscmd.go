/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/croquet-swiss/store"
	"github.com/mikeb26/croquet-swiss/swiss"
)

type SwissSubCommand string

const (
	SwissHelpCmd      SwissSubCommand = "help"
	SwissListCmd      SwissSubCommand = "list"
	SwissPairingsCmd  SwissSubCommand = "pairings"
	SwissStandingsCmd SwissSubCommand = "standings"
)

func (b *bot) swissCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.swissHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := b.subCmdHdlrs[SwissSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions holds the options common to the swiss subcommands.
type subOptions struct {
	tournament string
	round      int64
	broadcast  bool
}

func parseSubOptions(inter *discordgo.Interaction) subOptions {
	var opts subOptions
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "tournament":
			opts.tournament = strings.TrimSpace(opt.StringValue())
		case "round":
			opts.round = opt.IntValue()
		case "broadcast":
			opts.broadcast = opt.BoolValue()
		}
	}
	return opts
}

//go:embed help.md
var helpText string

func (b *bot) swissHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func (b *bot) swissListCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)

	list, err := b.store.List(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error listing tournaments: %v", err)
		log.Printf("discordbot.list: %v", resp.Data.Content)
		return resp
	}
	if len(list) == 0 {
		resp.Data.Content = "No tournaments found."
		return resp
	}

	var sb strings.Builder
	for _, sum := range list {
		if !sum.Date.IsZero() {
			sb.WriteString(fmt.Sprintf("**%s** ", sum.Date.Format("2006-01-02")))
		}
		sb.WriteString(fmt.Sprintf("%v (round %d of %d)\n", sum.Name,
			sum.RoundsPlayed, sum.RoundsTarget))
	}
	sb.WriteString("\nRun /swiss standings <tournament> to see the current standings\n")
	resp.Data.Content = truncateContent(sb.String())

	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// loadTournament resolves the tournament option, filling resp on failure.
func (b *bot) loadTournament(ctx context.Context, logPrefix string,
	opts subOptions, resp *discordgo.InteractionResponse) *store.Record {

	if opts.tournament == "" {
		resp.Data.Content = "Please provide a tournament name."
		log.Printf("%v: %v", logPrefix, resp.Data.Content)
		return nil
	}
	id, err := b.store.FindByName(ctx, opts.tournament)
	if errors.Is(err, store.ErrNotFound) {
		resp.Data.Content = fmt.Sprintf("No tournament named %v.",
			opts.tournament)
		log.Printf("%v: %v", logPrefix, resp.Data.Content)
		return nil
	}
	var rec *store.Record
	if err == nil {
		rec, err = b.store.Load(ctx, id)
	}
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading %v: %v",
			opts.tournament, err)
		log.Printf("%v: %v", logPrefix, resp.Data.Content)
		return nil
	}
	return rec
}

// swissPairingsCmdHandler handles the /swiss pairings command to display a
// round's pairings
func (b *bot) swissPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)
	rec := b.loadTournament(ctx, "discordbot.pairings", opts, resp)
	if rec == nil {
		return resp
	}

	played := len(rec.Tournament.Rounds())
	if played == 0 {
		resp.Data.Content = fmt.Sprintf("No pairings yet for %v.", rec.Name)
		return resp
	}
	idx := played - 1
	if opts.round > 0 {
		idx = int(opts.round) - 1
	}
	if idx >= played {
		resp.Data.Content = fmt.Sprintf("%v has only played %d rounds.",
			rec.Name, played)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(swiss.BuildPairingsOutput(rec.Tournament, idx)))

	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// swissStandingsCmdHandler handles the /swiss standings command to display
// current standings
func (b *bot) swissStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)
	rec := b.loadTournament(ctx, "discordbot.standings", opts, resp)
	if rec == nil {
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(swiss.BuildStandingsOutput(rec.Tournament)))

	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
