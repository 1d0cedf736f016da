/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/croquet-swiss/config"
	"github.com/mikeb26/croquet-swiss/store"
	"github.com/mikeb26/croquet-swiss/swiss"
)

type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

// newTestBot returns a bot over a temporary store holding one tournament
// with its first round scored.
func newTestBot(t *testing.T) (*bot, ed25519.PrivateKey) {
	t.Helper()
	ctx := context.Background()

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey returned error: %v", err)
	}
	cfg := config.Default()
	cfg.StorePath = filepath.Join(t.TempDir(), "bot.db")
	cfg.Discord.PublicKey = hex.EncodeToString(pub)

	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	tourney, err := swiss.NewTournament([]string{"Ann", "Ben", "Cat", "Dan"},
		3, swiss.WithShuffler(inOrder{}))
	if err != nil {
		t.Fatalf("NewTournament returned error: %v", err)
	}
	if _, _, err := tourney.Advance(); err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	for idx := 0; idx < 2; idx++ {
		if _, err := tourney.RecordResult(0, idx, 7, 3); err != nil {
			t.Fatalf("RecordResult returned error: %v", err)
		}
	}
	if _, err := st.Create(ctx, "Club Night",
		time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC), tourney); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	b, err := newBot(cfg, st)
	if err != nil {
		t.Fatalf("newBot returned error: %v", err)
	}
	return b, priv
}

func subCommand(name string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(SwissCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    name,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func tournamentOpt(name string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "tournament",
		Type:  discordgo.ApplicationCommandOptionString,
		Value: name,
	}
}

func TestSwissStandingsCmdHandler(t *testing.T) {
	b, _ := newTestBot(t)

	resp := b.swissCmdHandler(context.Background(),
		subCommand("standings", tournamentOpt("Club Night"),
			&discordgo.ApplicationCommandInteractionDataOption{
				Name:  "broadcast",
				Type:  discordgo.ApplicationCommandOptionBoolean,
				Value: true,
			}))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	if !strings.HasPrefix(resp.Data.Content, "```\nStandings after Round 1:") {
		t.Errorf("unexpected content:\n%v", resp.Data.Content)
	}
	if resp.Data.Flags != 0 {
		t.Errorf("expected broadcast response, got flags %v", resp.Data.Flags)
	}
}

func TestSwissPairingsCmdHandler(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	resp := b.swissCmdHandler(ctx, subCommand("pairings",
		tournamentOpt("Club Night")))
	if !strings.Contains(resp.Data.Content, "Round 1 of 3 Pairings:") ||
		!strings.Contains(resp.Data.Content, "Ann") {
		t.Errorf("unexpected content:\n%v", resp.Data.Content)
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("expected ephemeral response, got flags %v", resp.Data.Flags)
	}

	resp = b.swissCmdHandler(ctx, subCommand("pairings",
		tournamentOpt("Club Night"),
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "round",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 2.0,
		}))
	if resp.Data.Content != "Club Night has only played 1 rounds." {
		t.Errorf("unexpected content: %q", resp.Data.Content)
	}

	resp = b.swissCmdHandler(ctx, subCommand("pairings",
		tournamentOpt("Garden Party")))
	if resp.Data.Content != "No tournament named Garden Party." {
		t.Errorf("unexpected content: %q", resp.Data.Content)
	}

	resp = b.swissCmdHandler(ctx, subCommand("pairings"))
	if resp.Data.Content != "Please provide a tournament name." {
		t.Errorf("unexpected content: %q", resp.Data.Content)
	}
}

func TestSwissListAndHelp(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	resp := b.swissCmdHandler(ctx, subCommand("list"))
	if !strings.Contains(resp.Data.Content,
		"**2026-05-16** Club Night (round 1 of 3)") {
		t.Errorf("unexpected content:\n%v", resp.Data.Content)
	}

	resp = b.swissCmdHandler(ctx, subCommand("bogus"))
	if resp.Data.Content != truncateContent(helpText) {
		t.Errorf("expected help for unknown subcommand, got:\n%v",
			resp.Data.Content)
	}
}

func TestTruncateContent(t *testing.T) {
	long := strings.Repeat("é", 2500)
	got := []rune(truncateContent(long))
	if len(got) != 1991 || string(got[1988:]) != "..." {
		t.Errorf("unexpected truncation to %d runes", len(got))
	}
	if truncateContent("short") != "short" {
		t.Errorf("short content should be unchanged")
	}
}

func signedRequest(t *testing.T, priv ed25519.PrivateKey,
	body []byte) *http.Request {

	t.Helper()
	ts := "1747353600"
	sig := ed25519.Sign(priv, append([]byte(ts), body...))
	req := httptest.NewRequest(http.MethodPost, "/DiscordBot/Interaction",
		bytes.NewReader(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", ts)
	return req
}

func TestInteractionHandler(t *testing.T) {
	b, priv := newTestBot(t)

	rec := httptest.NewRecorder()
	b.interactionHandler(rec, signedRequest(t, priv, []byte(`{"type":1}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ping, got %d", rec.Code)
	}
	var resp discordgo.InteractionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Type != discordgo.InteractionResponsePong {
		t.Errorf("expected pong, got %v", resp.Type)
	}

	body := []byte(`{"type":2,"data":{"name":"swiss","options":[{"name":"standings","type":1,"options":[{"name":"tournament","type":3,"value":"Club Night"}]}]}}`)
	rec = httptest.NewRecorder()
	b.interactionHandler(rec, signedRequest(t, priv, body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for command, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Standings after Round 1") {
		t.Errorf("unexpected response body: %v", rec.Body.String())
	}

	// tampered body
	req := signedRequest(t, priv, []byte(`{"type":1}`))
	req.Body = http.NoBody
	rec = httptest.NewRecorder()
	b.interactionHandler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad signature, got %d", rec.Code)
	}
}
