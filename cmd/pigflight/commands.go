package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"text/tabwriter"

	"pigflight/internal/store"
)

var errUsage = errors.New("usage: pigflight [flags] [stats|shop|buy ITEM|select ITEM|chest [-rare]|settings [-volume N] [-sfx N]|reset -yes]")

func runCommand(st *store.Store, name string, args []string, w io.Writer) error {
	switch name {
	case "stats":
		return printStats(st, w)
	case "shop":
		return printShop(st, w)
	case "buy", "select":
		if len(args) != 1 {
			return errUsage
		}
		it, err := store.ParseItem(args[0])
		if err != nil {
			return err
		}
		var p store.Profile
		if name == "buy" {
			p, err = st.Purchase(it)
		} else {
			p, err = st.Select(it)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s, %d coins left\n", name, it, p.Coins)
		return nil
	case "chest":
		fs := flag.NewFlagSet("chest", flag.ContinueOnError)
		rare := fs.Bool("rare", false, fmt.Sprintf("open a rare chest for %d coins", store.RareChestCost))
		if err := fs.Parse(args); err != nil {
			return err
		}
		it, p, err := st.OpenChest(*rare, rand.IntN)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "unlocked %s, %d coins left\n", it, p.Coins)
		return nil
	case "settings":
		return settings(st, args, w)
	case "reset":
		fs := flag.NewFlagSet("reset", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "confirm")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if !*yes {
			return errors.New("reset forgets all stats, coins and items; pass -yes to confirm")
		}
		if err := st.ResetProgress(); err != nil {
			return err
		}
		fmt.Fprintln(w, "progress reset")
		return nil
	}
	return errUsage
}

func printStats(st *store.Store, w io.Writer) error {
	s := st.Stats()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "best score\t%d\n", s.BestScore)
	fmt.Fprintf(tw, "flights\t%d\n", s.Flights)
	fmt.Fprintf(tw, "total score\t%d\n", s.TotalScore)
	fmt.Fprintf(tw, "total distance\t%dm\n", s.TotalDistance)
	fmt.Fprintf(tw, "obstacles dodged\t%d\n", s.ObstaclesDodged)
	fmt.Fprintf(tw, "play time\t%s\n", s.PlayTime())
	for i, f := range s.Recent {
		fmt.Fprintf(tw, "recent %d\t%d pts\t%dm\t%s\t%s\n", i+1, f.Score, f.Distance, f.Biome, f.At.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func printShop(st *store.Store, w io.Writer) error {
	p := st.Profile()
	fmt.Fprintf(w, "coins: %d\n", p.Coins)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range store.Catalog() {
		price, err := it.Price()
		if err != nil {
			return err
		}
		mark := ""
		switch {
		case equipped(p, it):
			mark = "equipped"
		case p.Owns(it):
			mark = "owned"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", it, price, mark)
	}
	return tw.Flush()
}

func equipped(p store.Profile, it store.Item) bool {
	switch it.Kind {
	case store.ItemPig:
		return p.Pig == it.ID
	case store.ItemWing:
		return p.Wing == it.ID
	case store.ItemTrail:
		return p.Trail == it.ID
	}
	return false
}

func settings(st *store.Store, args []string, w io.Writer) error {
	cur := st.Settings()
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	volume := fs.Int("volume", cur.Volume, "master volume 0..100")
	sfx := fs.Int("sfx", cur.SFX, "effects volume 0..100")
	if err := fs.Parse(args); err != nil {
		return err
	}
	next := store.Settings{Volume: *volume, SFX: *sfx}
	if next != cur {
		if err := st.SaveSettings(next); err != nil {
			return err
		}
		next = st.Settings()
	}
	fmt.Fprintf(w, "volume %d, sfx %d\n", next.Volume, next.SFX)
	return nil
}
