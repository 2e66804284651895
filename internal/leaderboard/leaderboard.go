// Package leaderboard ranks users by XP behind a pluggable provider.
// The core engine is single-user; ranking against other users needs an
// external backend, so the provider is an interface with a static stub
// for offline use and a Redis implementation for shared deployments.
package leaderboard

import (
	"context"
	"sort"
)

// Entry is one leaderboard row.
type Entry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	Rank        int    `json:"rank"`
}

// RankingProvider serves and records leaderboard standings.
type RankingProvider interface {
	// Top returns the n highest-XP entries, best first, ranks filled in.
	Top(ctx context.Context, n int) ([]Entry, error)
	// Record upserts the given user's standing.
	Record(ctx context.Context, e Entry) error
}

// StaticProvider is the offline stub: fixed demo standings plus the local
// user, ranked together. It keeps the surrounding UI honest without any
// backend.
type StaticProvider struct {
	entries []Entry
}

// NewStaticProvider seeds the demo standings.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{entries: []Entry{
		{UserID: "demo_aria", DisplayName: "Aria", XP: 12400, Level: 12},
		{UserID: "demo_felix", DisplayName: "Felix", XP: 9800, Level: 10},
		{UserID: "demo_june", DisplayName: "June", XP: 7350, Level: 9},
		{UserID: "demo_omar", DisplayName: "Omar", XP: 4100, Level: 7},
		{UserID: "demo_tess", DisplayName: "Tess", XP: 1200, Level: 4},
	}}
}

func (p *StaticProvider) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].XP > out[j].XP })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (p *StaticProvider) Record(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range p.entries {
		if p.entries[i].UserID == e.UserID {
			p.entries[i].XP = e.XP
			p.entries[i].Level = e.Level
			if e.DisplayName != "" {
				p.entries[i].DisplayName = e.DisplayName
			}
			return nil
		}
	}
	p.entries = append(p.entries, e)
	return nil
}
